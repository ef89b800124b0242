package tracker

import "slices"

// ChecklistSteps is the fixed application routine shown for every job
var ChecklistSteps = []string{
	"Read the full Job Description carefully",
	"Research the Company (Website, LinkedIn, Product)",
	"Check salary range & glassdoor reviews",
	"Tailor Resume keywords to match JD",
	"Write a short, custom Cover Note",
	"Find the Hiring Manager/Recruiter on LinkedIn",
	"Apply on the Company Site (not Easy Apply if possible)",
	"Send connection request to Recruiter",
	"Set a reminder to follow up in 3 days",
	"Log application in Job Tracker",
}

// ChecklistItem is one step with its completion flag
type ChecklistItem struct {
	Step string `json:"step"`
	Done bool   `json:"done"`
}

// Checklist is the rendered routine for one job
type Checklist struct {
	Items     []ChecklistItem `json:"items"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
}

// BuildChecklist renders the fixed steps against the stored completions
func BuildChecklist(done []string) Checklist {
	cl := Checklist{Items: make([]ChecklistItem, 0, len(ChecklistSteps)), Total: len(ChecklistSteps)}
	for _, step := range ChecklistSteps {
		isDone := slices.Contains(done, step)
		if isDone {
			cl.Completed++
		}
		cl.Items = append(cl.Items, ChecklistItem{Step: step, Done: isDone})
	}
	return cl
}

// NormalizeDone keeps only known steps, once each, in routine order.
func NormalizeDone(done []string) []string {
	out := make([]string, 0, len(done))
	for _, step := range ChecklistSteps {
		if slices.Contains(done, step) {
			out = append(out, step)
		}
	}
	return out
}

// Toggle flips one step. Unknown steps are rejected.
func Toggle(done []string, step string) ([]string, error) {
	if !slices.Contains(ChecklistSteps, step) {
		return nil, &ValidationError{Msg: "unknown checklist step"}
	}
	if slices.Contains(done, step) {
		next := slices.DeleteFunc(slices.Clone(done), func(s string) bool { return s == step })
		return NormalizeDone(next), nil
	}
	return NormalizeDone(append(slices.Clone(done), step)), nil
}
