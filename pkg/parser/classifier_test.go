package parser

import (
	"strings"
	"testing"
)

func TestTaskPriority(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"tarefa de prioridade crítica", "High"},
		{"this is a critical path task", "High"},
		{"prioridade alta para o sprint", "High"},
		{"prioridade baixa, pode esperar", "Low"},
		{"tarefa comum sem marcador", "Medium"},
		// Critical outranks low when both appear.
		{"critical fix for a low traffic page", "High"},
	}
	for _, tt := range tests {
		if got := taskPriority(tt.content); got != tt.want {
			t.Errorf("taskPriority(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestPriorityLabel_FourBuckets(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"tarefa crítica", "Priority: Critical"},
		{"prioridade alta", "Priority: High"},
		{"prioridade baixa", "Priority: Low"},
		{"tarefa comum", "Priority: Medium"},
		{"critical fix for a low traffic page", "Priority: Critical"},
	}
	for _, tt := range tests {
		if got := priorityLabel(tt.content); got != tt.want {
			t.Errorf("priorityLabel(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestTaskTypeLabel(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"configurar o ambiente", "Type: Setup"},
		{"configure the build environment", "Type: Setup"},
		{"implementar fluxo de login", "Type: Development"},
		{"testar o fluxo de pagamento", "Type: Testing"},
		{"documentar no readme", "Type: Documentation"},
		{"conectar com a api externa", "Type: Integration"},
		{"ajustar layout da tela", "Type: UI/UX"},
		{"revisar a arquitetura", "Type: Architecture"},
		// No keyword at all falls back to Development.
		{"fazer algo", "Type: Development"},
		// Rule order decides ties: setup beats development.
		{"configurar e implementar", "Type: Setup"},
		// Testing beats documentation.
		{"testar e documentar", "Type: Testing"},
	}
	for _, tt := range tests {
		if got := taskTypeLabel(tt.content); got != tt.want {
			t.Errorf("taskTypeLabel(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestTechnologyLabels_SinglePickPerGroup(t *testing.T) {
	labels := technologyLabels("migrar o app para react native com typescript")
	want := []string{"App: React Native", "Frontend: TypeScript"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], labels[i])
		}
	}
}

func TestTechnologyLabels_ReactExcludedByNative(t *testing.T) {
	labels := technologyLabels("usar react para native modules")
	if len(labels) != 0 {
		t.Errorf("expected no technology labels, got %v", labels)
	}
}

func TestTechnologyLabels_Firebase(t *testing.T) {
	labels := technologyLabels("conectar firebase auth")
	if len(labels) != 1 || labels[0] != "Backend: Firebase" {
		t.Errorf("expected [Backend: Firebase], got %v", labels)
	}
}

func TestComplexityLabel_FromEstimate(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"tempo estimado: 1 hora", "Complexity: Simple"},
		{"tempo estimado: 2 horas", "Complexity: Simple"},
		{"tempo estimado: 4 horas", "Complexity: Medium"},
		{"tempo estimado: 8 hours", "Complexity: Medium"},
		{"tempo estimado: 10 hours", "Complexity: Complex"},
		{"tempo estimado: 16 horas", "Complexity: Complex"},
		{"tempo estimado: 20 horas", "Complexity: Very Complex"},
		// Days normalize to 8 hours, weeks to 40.
		{"tempo estimado: 1 dia", "Complexity: Medium"},
		{"tempo estimado: 2 dias", "Complexity: Complex"},
		{"tempo estimado: 1 semana", "Complexity: Very Complex"},
		{"tempo estimado: 1 week", "Complexity: Very Complex"},
		// The bold field label from a real metadata line still parses.
		{"**tempo estimado**: 4 hours | **responsável**: alice", "Complexity: Medium"},
		// Keyword fallback when no estimate parses.
		{"uma tarefa complexa sem estimativa", "Complexity: Complex"},
		{"uma tarefa comum sem estimativa", ""},
	}
	for _, tt := range tests {
		if got := complexityLabel(tt.content); got != tt.want {
			t.Errorf("complexityLabel(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestTaskLabels_SimpleComplexityDiscarded(t *testing.T) {
	labels := taskLabels("Configurar ambiente\n**Tempo Estimado**: 1 hora")
	for _, l := range labels {
		if strings.Contains(l, "Complexity") {
			t.Errorf("simple tasks must not carry a complexity label, got %v", labels)
		}
	}
	if len(labels) < 2 || labels[0] != "Priority: Medium" || labels[1] != "Type: Setup" {
		t.Errorf("unexpected labels %v", labels)
	}
}

func TestTaskLabels_Order(t *testing.T) {
	labels := taskLabels("Implementar tela de login com firebase\n**Tempo Estimado**: 10 horas")
	want := []string{"Priority: Medium", "Type: Development", "Backend: Firebase", "Complexity: Complex"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], labels[i])
		}
	}
}

func TestTaskLabels_TruncatedToSix(t *testing.T) {
	content := "crítica: configurar expo com typescript para ios, tarefa complexa de inicialização"
	labels := taskLabels(content)
	if len(labels) != maxLabels {
		t.Fatalf("expected %d labels, got %d: %v", maxLabels, len(labels), labels)
	}
	if labels[0] != "Priority: Critical" {
		t.Errorf("expected Priority: Critical first, got %q", labels[0])
	}
	// The phase label is the one past the cap and gets dropped.
	for _, l := range labels {
		if strings.HasPrefix(l, "Phase:") {
			t.Errorf("expected phase label to be truncated, got %v", labels)
		}
	}
	if labels[maxLabels-1] != "Complexity: Complex" {
		t.Errorf("expected Complexity: Complex last, got %q", labels[maxLabels-1])
	}
}

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"fase de inicialização do projeto", "Phase: Foundation"},
		{"project setup tasks", "Phase: Foundation"},
		{"desenvolvimento do core", "Phase: Development"},
		{"tarefa sem fase", ""},
	}
	for _, tt := range tests {
		if got := phaseLabel(tt.content); got != tt.want {
			t.Errorf("phaseLabel(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}
