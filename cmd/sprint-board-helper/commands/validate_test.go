package commands

import (
	"strings"
	"testing"

	"github.com/goblinsan/sprint-board-helper/pkg/types"
)

func TestSprintWarnings_Clean(t *testing.T) {
	sprint := &types.Sprint{
		Title: "Sprint 1",
		Milestones: []types.Milestone{
			{
				Title: "MARCO 1",
				Tasks: []types.Task{
					{Title: "Task", AcceptanceCriteria: []string{"done"}},
				},
			},
		},
		SuccessMetrics:   []string{"shipped"},
		DefinitionOfDone: []string{"reviewed"},
	}
	warnings := sprintWarnings(sprint)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestSprintWarnings_DuplicateMilestones(t *testing.T) {
	sprint := &types.Sprint{
		Title: "Sprint 1",
		Milestones: []types.Milestone{
			{Title: "MARCO 1", Tasks: []types.Task{{Title: "A", AcceptanceCriteria: []string{"x"}}}},
			{Title: "MARCO 1", Tasks: []types.Task{{Title: "B", AcceptanceCriteria: []string{"x"}}}},
		},
		SuccessMetrics:   []string{"shipped"},
		DefinitionOfDone: []string{"reviewed"},
	}
	warnings := sprintWarnings(sprint)
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "duplicate title") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate title warning, got %v", warnings)
	}
}

func TestSprintWarnings_EmptyMilestone(t *testing.T) {
	sprint := &types.Sprint{
		Title: "Sprint 1",
		Milestones: []types.Milestone{
			{Title: "MARCO 1"},
		},
		SuccessMetrics:   []string{"shipped"},
		DefinitionOfDone: []string{"reviewed"},
	}
	warnings := sprintWarnings(sprint)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "has no tasks") {
		t.Errorf("expected empty milestone warning, got %q", warnings[0])
	}
}

func TestSprintWarnings_TaskWithoutCriteria(t *testing.T) {
	sprint := &types.Sprint{
		Title: "Sprint 1",
		Milestones: []types.Milestone{
			{Title: "MARCO 1", Tasks: []types.Task{{Title: "Loose task"}}},
		},
		SuccessMetrics:   []string{"shipped"},
		DefinitionOfDone: []string{"reviewed"},
	}
	warnings := sprintWarnings(sprint)
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "no acceptance criteria") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected missing criteria warning, got %v", warnings)
	}
}

func TestSprintWarnings_MissingSections(t *testing.T) {
	sprint := &types.Sprint{
		Title: "Sprint 1",
		Milestones: []types.Milestone{
			{Title: "MARCO 1", Tasks: []types.Task{{Title: "A", AcceptanceCriteria: []string{"x"}}}},
		},
	}
	warnings := sprintWarnings(sprint)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "success metrics") {
		t.Errorf("expected success metrics warning, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "definition of done") {
		t.Errorf("expected definition of done warning, got %q", warnings[1])
	}
}
