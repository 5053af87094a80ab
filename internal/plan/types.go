package plan

import (
	"github.com/felixgeelhaar/buildplan/internal/resolve"
)

// Plan is the ordered task list of one build invocation
type Plan struct {
	InvocationID string                       `json:"invocation_id" yaml:"invocation_id"`
	Fingerprint  string                       `json:"fingerprint" yaml:"fingerprint"`
	Tasks        []Task                       `json:"tasks" yaml:"tasks"`
	Dependencies []resolve.ResolvedDependency `json:"dependencies" yaml:"dependencies"`
	Settings     map[string]Setting           `json:"settings" yaml:"settings"`
}

// Task is one unit of build work
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	DependsOn []string `json:"depends_on" yaml:"depends_on"`
	Action    Action   `json:"action" yaml:"action"`
}

// Action describes what a task does and what it reads
type Action struct {
	Kind         string   `json:"kind" yaml:"kind"`
	Settings     []string `json:"settings,omitempty" yaml:"settings,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Setting is a settings snapshot entry. Values are rendered as strings so
// saved plans load back unchanged.
type Setting struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Task returns the task with the given ID
func (p *Plan) Task(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Dependency returns the resolved dependency with the given library name
func (p *Plan) Dependency(name string) (resolve.ResolvedDependency, bool) {
	for _, d := range p.Dependencies {
		if d.Name.String() == name {
			return d, true
		}
	}
	return resolve.ResolvedDependency{}, false
}

// TaskIDs returns task IDs in plan order
func (p *Plan) TaskIDs() []string {
	ids := make([]string, len(p.Tasks))
	for i, t := range p.Tasks {
		ids[i] = t.ID
	}
	return ids
}
