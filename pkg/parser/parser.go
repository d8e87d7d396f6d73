// Package parser extracts a structured sprint plan from a markdown document.
//
// The dialect is fixed: a decorated level-1 heading for the sprint title,
// level-2 headings for milestones, level-4 headings for tasks, and bold
// field labels (Duração, Foco, Prioridade, ...) for scalar metadata. The
// extractor slices the document into positional regions (milestone i spans
// from its heading to the start of milestone i+1) and applies field
// extraction within each region.
package parser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goblinsan/sprint-board-helper/pkg/types"
)

var (
	// ErrMissingTitle indicates the document has no sprint title heading.
	ErrMissingTitle = errors.New("sprint title not found, expected format: # 🎯 **Title**")
	// ErrNoMilestones indicates the document declares no milestone headings.
	ErrNoMilestones = errors.New("no milestones found, expected format: ## 🎯 **Milestone Title**")
)

var (
	titleRe     = regexp.MustCompile(`# 🎯 \*\*(.+?)\*\*`)
	milestoneRe = regexp.MustCompile(`## 🎯 \*\*(.+?)\*\*`)
	taskHeadRe  = regexp.MustCompile(`#### \*\*(.+?)\*\*`)
	// The metadata line must follow the task heading with nothing but
	// whitespace in between; a heading without it is not a task.
	taskMetaRe = regexp.MustCompile(`^\s*\*\*Tempo Estimado\*\*:\s*([^|\n]+?)\s*\|\s*\*\*Responsável\*\*:[ \t]*([^\n]+)`)

	checkboxRe  = regexp.MustCompile(`- \[ \] (.+)`)
	bulletRe    = regexp.MustCompile(`- (.+)`)
	codeBlockRe = regexp.MustCompile("(?s)```\\w*\n(.*?)\n```")

	metricsHeadRe = regexp.MustCompile(`## 📊 \*\*Métricas de Sucesso do Sprint \d+\*\*`)
	doneHeadRe    = regexp.MustCompile(`## 📋 \*\*Definição de Pronto do Sprint \d+\*\*`)

	durationLineRe     = lineFieldRe("Duração")
	focusLineRe        = lineFieldRe("Foco")
	priorityLineRe     = lineFieldRe("Prioridade")
	dependenciesLineRe = lineFieldRe("Dependências")

	// Milestone metadata sits on one pipe-separated line, so values stop
	// at the next pipe rather than the end of the line.
	durationPipeRe = pipeFieldRe("Duração")
	priorityPipeRe = pipeFieldRe("Prioridade")
)

func lineFieldRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`\*\*` + label + `\*\*:[ \t]*([^\n]+)`)
}

func pipeFieldRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`\*\*` + label + `\*\*:[ \t]*([^|\n]+)`)
}

// ParseFile reads a markdown sprint file and parses it.
func ParseFile(path string) (*types.Sprint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprint file %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, fmt.Errorf("sprint file is empty: %s", path)
	}
	return Parse(string(content))
}

// Parse converts markdown sprint content into a Sprint tree. It fails only
// when the title or all milestones are missing; optional fields degrade to
// empty values.
func Parse(content string) (*types.Sprint, error) {
	title, err := extractTitle(content)
	if err != nil {
		return nil, err
	}

	milestones, err := extractMilestones(content)
	if err != nil {
		return nil, err
	}

	sprint := &types.Sprint{
		Title:            title,
		Duration:         matchField(durationLineRe, content),
		Focus:            matchField(focusLineRe, content),
		Priority:         matchField(priorityLineRe, content),
		Dependencies:     matchField(dependenciesLineRe, content),
		Milestones:       milestones,
		SuccessMetrics:   extractSuccessMetrics(content),
		DefinitionOfDone: extractDefinitionOfDone(content),
	}
	if sprint.Priority == "" {
		sprint.Priority = "Medium"
	}
	return sprint, nil
}

// extractTitle returns the first decorated level-1 heading title.
func extractTitle(content string) (string, error) {
	m := titleRe.FindStringSubmatch(content)
	if m == nil {
		return "", ErrMissingTitle
	}
	return strings.TrimSpace(m[1]), nil
}

// extractMilestones slices the document into one region per milestone
// heading. Region i runs from its heading to the start of heading i+1, or
// to the end of the document for the last milestone.
func extractMilestones(content string) ([]types.Milestone, error) {
	heads := milestoneRe.FindAllStringSubmatchIndex(content, -1)
	if len(heads) == 0 {
		return nil, ErrNoMilestones
	}

	milestones := make([]types.Milestone, 0, len(heads))
	for i, head := range heads {
		end := len(content)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		region := content[head[0]:end]

		milestones = append(milestones, types.Milestone{
			Title:        strings.TrimSpace(content[head[2]:head[3]]),
			Duration:     matchField(durationPipeRe, region),
			Priority:     matchField(priorityPipeRe, region),
			Dependencies: matchField(dependenciesLineRe, region),
			Tasks:        extractTasks(region),
		})
	}
	return milestones, nil
}

// extractTasks finds every task heading in a milestone region. A task region
// ends at the next task heading, a horizontal rule, or the end of the
// milestone region. Headings that are not immediately followed by the
// estimated-time/responsible metadata line are skipped entirely; that is a
// documented limitation of the dialect, not an error.
func extractTasks(region string) []types.Task {
	heads := taskHeadRe.FindAllStringSubmatchIndex(region, -1)

	var tasks []types.Task
	for i, head := range heads {
		end := len(region)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		if rule := strings.Index(region[head[1]:end], "---"); rule >= 0 {
			end = head[1] + rule
		}

		meta := taskMetaRe.FindStringSubmatch(region[head[1]:end])
		if meta == nil {
			continue
		}

		taskContent := region[head[0]:end]
		tasks = append(tasks, types.Task{
			Title:                 strings.TrimSpace(region[head[2]:head[3]]),
			Description:           extractDescription(taskContent),
			EstimatedTime:         strings.TrimSpace(meta[1]),
			Responsible:           strings.TrimSpace(meta[2]),
			AcceptanceCriteria:    extractAcceptanceCriteria(taskContent),
			TechnicalRequirements: extractTechnicalRequirements(taskContent),
			Deliverables:          extractDeliverables(taskContent),
			Priority:              taskPriority(strings.ToLower(taskContent)),
			Labels:                taskLabels(taskContent),
		})
	}
	return tasks
}

func extractDescription(taskContent string) string {
	body, ok := sliceField(taskContent, "**Descrição**:", "**Critérios", "**Requisitos", "**Entregáveis")
	if !ok {
		return ""
	}
	return strings.TrimSpace(body)
}

func extractAcceptanceCriteria(taskContent string) []string {
	body, ok := sliceField(taskContent, "**Critérios de Aceitação**:", "**Requisitos", "**Entregáveis")
	if !ok {
		return nil
	}
	return checkboxItems(body)
}

// extractTechnicalRequirements collects bullet entries first, then appends
// one combined entry per embedded code block.
func extractTechnicalRequirements(taskContent string) []string {
	body, ok := sliceField(taskContent, "**Requisitos Técnicos**:", "**Entregáveis")
	if !ok {
		return nil
	}
	var reqs []string
	for _, m := range bulletRe.FindAllStringSubmatch(body, -1) {
		reqs = append(reqs, m[1])
	}
	for _, m := range codeBlockRe.FindAllStringSubmatch(body, -1) {
		reqs = append(reqs, m[1])
	}
	return reqs
}

func extractDeliverables(taskContent string) []string {
	body, ok := sliceField(taskContent, "**Entregáveis**:", "---")
	if !ok {
		return nil
	}
	var items []string
	for _, m := range bulletRe.FindAllStringSubmatch(body, -1) {
		items = append(items, m[1])
	}
	return items
}

func extractSuccessMetrics(content string) []string {
	return headedChecklist(metricsHeadRe, content)
}

func extractDefinitionOfDone(content string) []string {
	return headedChecklist(doneHeadRe, content)
}

// headedChecklist captures checkbox items between a level-2 section heading
// and the next heading of any level.
func headedChecklist(head *regexp.Regexp, content string) []string {
	loc := head.FindStringIndex(content)
	if loc == nil {
		return nil
	}
	body := content[loc[1]:]
	if next := strings.Index(body, "##"); next >= 0 {
		body = body[:next]
	}
	return checkboxItems(body)
}

// sliceField returns the text between the first occurrence of opening and
// the earliest following occurrence of any closing marker, or the end of
// text when no closing marker follows.
func sliceField(text, opening string, closings ...string) (string, bool) {
	i := strings.Index(text, opening)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(opening):]
	end := len(rest)
	for _, c := range closings {
		if j := strings.Index(rest, c); j >= 0 && j < end {
			end = j
		}
	}
	return rest[:end], true
}

func checkboxItems(text string) []string {
	var items []string
	for _, m := range checkboxRe.FindAllStringSubmatch(text, -1) {
		items = append(items, m[1])
	}
	return items
}

func matchField(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
