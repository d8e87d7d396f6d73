package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// maxLabels bounds how many labels one task may carry; trailing technology
// and phase labels are dropped first since priority and type come first.
const maxLabels = 6

// Keyword tables are ordered: the first matching rule wins. Keywords cover
// both the Portuguese field dialect and the English spellings that show up
// in mixed-language plans.
var (
	criticalKeywords = []string{"crítica", "critical"}
	highKeywords     = []string{"alta", "high"}
	lowKeywords      = []string{"baixa", "low"}

	taskTypeRules = []keywordRule{
		{[]string{"configurar", "configuração", "configure", "setup", "instalar", "instalação", "install", "inicializar", "inicialização", "environment"}, "Type: Setup"},
		{[]string{"implementar", "implementação", "implement", "criar", "desenvolver", "desenvolvimento", "develop", "código", "programar"}, "Type: Development"},
		{[]string{"testar", "teste", "testing", "validar", "verificar", "debug"}, "Type: Testing"},
		{[]string{"documentar", "documentação", "document", "readme", "guia", "manual"}, "Type: Documentation"},
		{[]string{"integrar", "integração", "conectar", "conexão", "api", "serviço"}, "Type: Integration"},
		{[]string{"interface", "tela", "componente", "design", "layout", "visual", "ui", "ux"}, "Type: UI/UX"},
		{[]string{"arquitetura", "architecture", "estrutura", "padrão", "pattern", "organização"}, "Type: Architecture"},
	}

	// Three independent single-pick groups: framework/platform, language,
	// mobile platform. Each contributes at most one label.
	techGroups = [][]techRule{
		{
			{keywords: []string{"expo"}, label: "App: Expo"},
			{keywords: []string{"react native"}, label: "App: React Native"},
			{keywords: []string{"react"}, exclude: []string{"native"}, label: "Frontend: React"},
			{keywords: []string{"firebase"}, label: "Backend: Firebase"},
			{keywords: []string{"node", "nodejs"}, label: "Backend: Node.js"},
		},
		{
			{keywords: []string{"typescript", "ts"}, label: "Frontend: TypeScript"},
			{keywords: []string{"javascript", "js"}, label: "Frontend: JavaScript"},
			{keywords: []string{"python"}, label: "Backend: Python"},
		},
		{
			{keywords: []string{"ios", "iphone"}, label: "App: iOS"},
			{keywords: []string{"android"}, label: "App: Android"},
			{keywords: []string{"mobile", "móvel"}, label: "App: Mobile"},
		},
	}

	complexityKeywords = []string{"complexo", "difícil", "desafiador", "complex", "challenging"}

	phaseRules = []keywordRule{
		{[]string{"inicialização", "setup", "configuração", "primeira", "foundation"}, "Phase: Foundation"},
		{[]string{"desenvolvimento", "implementação", "core", "principal"}, "Phase: Development"},
	}

	// Accepts estimates in both unit spellings, with or without the bold
	// markers around the field label.
	estimateRe = regexp.MustCompile(`tempo estimado[*:\s]*(\d+)\s*(hora|hour|dia|day|semana|week)`)
)

type keywordRule struct {
	keywords []string
	label    string
}

type techRule struct {
	keywords []string
	exclude  []string
	label    string
}

// taskPriority derives the task priority level from its content. Critical
// and high keywords both map to High here; the four-bucket distinction
// exists only in the label path (see priorityLabel).
func taskPriority(lower string) string {
	switch {
	case containsAny(lower, criticalKeywords):
		return "High"
	case containsAny(lower, highKeywords):
		return "High"
	case containsAny(lower, lowKeywords):
		return "Low"
	default:
		return "Medium"
	}
}

// taskLabels derives the ordered label set for a task: priority, one task
// type, up to three technologies, complexity (Simple is computed but never
// attached), and phase, truncated to maxLabels.
func taskLabels(content string) []string {
	lower := strings.ToLower(content)

	labels := []string{priorityLabel(lower), taskTypeLabel(lower)}
	labels = append(labels, technologyLabels(lower)...)

	if c := complexityLabel(lower); c != "" && !strings.Contains(c, "Simple") {
		labels = append(labels, c)
	}
	if p := phaseLabel(lower); p != "" {
		labels = append(labels, p)
	}

	if len(labels) > maxLabels {
		labels = labels[:maxLabels]
	}
	return labels
}

func priorityLabel(lower string) string {
	switch {
	case containsAny(lower, criticalKeywords):
		return "Priority: Critical"
	case containsAny(lower, highKeywords):
		return "Priority: High"
	case containsAny(lower, lowKeywords):
		return "Priority: Low"
	default:
		return "Priority: Medium"
	}
}

func taskTypeLabel(lower string) string {
	for _, rule := range taskTypeRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return "Type: Development"
}

func technologyLabels(lower string) []string {
	var labels []string
	for _, group := range techGroups {
		for _, rule := range group {
			if !containsAny(lower, rule.keywords) || containsAny(lower, rule.exclude) {
				continue
			}
			labels = append(labels, rule.label)
			break
		}
	}
	return labels
}

// complexityLabel classifies the parsed time estimate normalized to hours
// (1 day = 8h, 1 week = 40h). Without a parseable estimate it falls back to
// complexity-indicating keywords, or no label at all.
func complexityLabel(lower string) string {
	if m := estimateRe.FindStringSubmatch(lower); m != nil {
		hours, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "dia", "day":
			hours *= 8
		case "semana", "week":
			hours *= 40
		}
		switch {
		case hours <= 2:
			return "Complexity: Simple"
		case hours <= 8:
			return "Complexity: Medium"
		case hours <= 16:
			return "Complexity: Complex"
		default:
			return "Complexity: Very Complex"
		}
	}
	if containsAny(lower, complexityKeywords) {
		return "Complexity: Complex"
	}
	return ""
}

func phaseLabel(lower string) string {
	for _, rule := range phaseRules {
		if containsAny(lower, rule.keywords) {
			return rule.label
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
