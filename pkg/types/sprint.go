package types

// Sprint is the root of a parsed sprint plan document.
type Sprint struct {
	Title            string      `json:"title"`
	Duration         string      `json:"duration"`
	Focus            string      `json:"focus"`
	Priority         string      `json:"priority"`
	Dependencies     string      `json:"dependencies"`
	Milestones       []Milestone `json:"milestones"`
	SuccessMetrics   []string    `json:"success_metrics"`
	DefinitionOfDone []string    `json:"definition_of_done"`
}

// Milestone is one milestone section of a sprint, in document order.
type Milestone struct {
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	Priority     string `json:"priority"`
	Dependencies string `json:"dependencies"`
	Tasks        []Task `json:"tasks"`
}

// Task is a single task within a milestone.
type Task struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	EstimatedTime         string   `json:"estimated_time"`
	Responsible           string   `json:"responsible"`
	AcceptanceCriteria    []string `json:"acceptance_criteria"`
	TechnicalRequirements []string `json:"technical_requirements"`
	Deliverables          []string `json:"deliverables"`
	Priority              string   `json:"priority"`
	Labels                []string `json:"labels"`
}

// TotalMilestones returns the number of milestones in the sprint.
func (s *Sprint) TotalMilestones() int {
	return len(s.Milestones)
}

// TotalTasks returns the number of tasks across all milestones.
func (s *Sprint) TotalTasks() int {
	total := 0
	for _, m := range s.Milestones {
		total += len(m.Tasks)
	}
	return total
}

// MilestoneByTitle returns the first milestone with the given title, or nil.
func (s *Sprint) MilestoneByTitle(title string) *Milestone {
	for i := range s.Milestones {
		if s.Milestones[i].Title == title {
			return &s.Milestones[i]
		}
	}
	return nil
}

// TotalTasks returns the number of tasks in the milestone.
func (m *Milestone) TotalTasks() int {
	return len(m.Tasks)
}

// CriteriaCount returns the number of acceptance criteria on the task.
func (t *Task) CriteriaCount() int {
	return len(t.AcceptanceCriteria)
}
