// Package render turns a parsed sprint into the ordered card-creation
// requests a board backend consumes: one sprint overview card, one card per
// milestone, and one card per task with its acceptance-criteria checklist.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goblinsan/sprint-board-helper/pkg/types"
)

// Checklist is a named ordered list attached to a card.
type Checklist struct {
	Name  string
	Items []string
}

// CardRequest is one card to create on the board, in creation order.
type CardRequest struct {
	Title       string
	Description string
	Labels      []string
	Checklist   *Checklist
}

// Render produces the card requests for a sprint: the overview card first,
// then each milestone card followed by its task cards, in document order.
func Render(sprint *types.Sprint) []CardRequest {
	cards := []CardRequest{sprintCard(sprint)}
	for i := range sprint.Milestones {
		m := &sprint.Milestones[i]
		cards = append(cards, milestoneCard(m))
		for _, task := range m.Tasks {
			cards = append(cards, taskCard(task, m))
		}
	}
	return cards
}

func sprintCard(sprint *types.Sprint) CardRequest {
	var b strings.Builder
	b.WriteString("**🎯 Sprint Overview**\n\n")
	fmt.Fprintf(&b, "**Duration:** %s\n", sprint.Duration)
	fmt.Fprintf(&b, "**Focus:** %s\n", sprint.Focus)
	fmt.Fprintf(&b, "**Priority:** %s\n", sprint.Priority)
	fmt.Fprintf(&b, "**Dependencies:** %s\n", sprint.Dependencies)

	b.WriteString("\n**📊 Success Metrics:**\n")
	for _, metric := range sprint.SuccessMetrics {
		fmt.Fprintf(&b, "• %s\n", metric)
	}
	b.WriteString("\n**📋 Definition of Done:**\n")
	for _, item := range sprint.DefinitionOfDone {
		fmt.Fprintf(&b, "• %s\n", item)
	}
	b.WriteString("\n**📈 Milestones:**\n")
	for _, m := range sprint.Milestones {
		fmt.Fprintf(&b, "• %s (%s)\n", m.Title, m.Duration)
	}

	return CardRequest{
		Title:       "🎯 " + sprint.Title,
		Description: strings.TrimSpace(b.String()),
		Labels:      []string{"Priority: High"},
	}
}

func milestoneCard(m *types.Milestone) CardRequest {
	var b strings.Builder
	b.WriteString("**🎯 Milestone Overview**\n\n")
	fmt.Fprintf(&b, "**Duration:** %s\n", m.Duration)
	fmt.Fprintf(&b, "**Priority:** %s\n", m.Priority)
	fmt.Fprintf(&b, "**Dependencies:** %s\n", m.Dependencies)

	fmt.Fprintf(&b, "\n**📋 Tasks (%d):**\n", len(m.Tasks))
	for _, task := range m.Tasks {
		fmt.Fprintf(&b, "• %s (%s)\n", CleanTitle(task.Title), task.EstimatedTime)
	}

	return CardRequest{
		Title:       "🎯 " + CleanTitle(m.Title),
		Description: strings.TrimSpace(b.String()),
		Labels:      []string{milestonePriorityLabel(m.Priority)},
	}
}

func taskCard(task types.Task, m *types.Milestone) CardRequest {
	var b strings.Builder
	b.WriteString("**📝 Task Details**\n\n")
	fmt.Fprintf(&b, "**Estimated Time:** %s\n", task.EstimatedTime)
	fmt.Fprintf(&b, "**Responsible:** %s\n", task.Responsible)
	fmt.Fprintf(&b, "**Milestone:** %s\n", m.Title)

	fmt.Fprintf(&b, "\n**📋 Description:**\n%s\n", task.Description)

	b.WriteString("\n**🔧 Technical Requirements:**\n")
	for _, req := range task.TechnicalRequirements {
		fmt.Fprintf(&b, "• %s\n", req)
	}
	b.WriteString("\n**📦 Deliverables:**\n")
	for _, item := range task.Deliverables {
		fmt.Fprintf(&b, "• %s\n", item)
	}

	card := CardRequest{
		Title:       "📋 " + CleanTitle(task.Title),
		Description: strings.TrimSpace(b.String()),
		Labels:      task.Labels,
	}
	if len(task.AcceptanceCriteria) > 0 {
		card.Checklist = &Checklist{
			Name:  "✅ Acceptance Criteria",
			Items: task.AcceptanceCriteria,
		}
	}
	return card
}

// milestonePriorityLabel maps the free-text milestone priority onto a
// priority label, defaulting to Medium.
func milestonePriorityLabel(priority string) string {
	lower := strings.ToLower(priority)
	switch {
	case strings.Contains(lower, "crítica"), strings.Contains(lower, "critical"):
		return "Priority: Critical"
	case strings.Contains(lower, "alta"), strings.Contains(lower, "high"):
		return "Priority: High"
	default:
		return "Priority: Medium"
	}
}

var (
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	headerRe   = regexp.MustCompile(`^#+\s*`)
	metadataRe = regexp.MustCompile(`\s*\*\*(Duração|Prioridade|Dependências)\*\*:.*$`)
)

// CleanTitle strips markdown heading markers, bold emphasis, and any
// trailing inline metadata from a title line.
func CleanTitle(title string) string {
	title = metadataRe.ReplaceAllString(title, "")
	title = headerRe.ReplaceAllString(title, "")
	title = boldRe.ReplaceAllString(title, "$1")
	return strings.TrimSpace(title)
}
