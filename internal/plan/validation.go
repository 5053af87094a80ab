package plan

import (
	"fmt"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// Validate checks if the Task is well formed
func (t *Task) Validate() error {
	if _, err := domain.NewTaskID(t.ID); err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}
	for i, dep := range t.DependsOn {
		if _, err := domain.NewTaskID(dep); err != nil {
			return fmt.Errorf("prerequisite at index %d has invalid task ID: %w", i, err)
		}
	}
	if t.Action.Kind == "" {
		return fmt.Errorf("action kind cannot be empty")
	}
	return nil
}

// Validate checks the structure of a plan: well formed tasks, unique IDs,
// known prerequisites and an acyclic graph. Whether the order is
// topological and references resolve is left to the validate package.
func (p *Plan) Validate() error {
	if len(p.Tasks) == 0 {
		return builderrors.New(builderrors.ErrCodeFileUnmarshal, "plan must have at least one task")
	}

	edges := make(map[string][]string, len(p.Tasks))
	for i, task := range p.Tasks {
		if err := task.Validate(); err != nil {
			return builderrors.Wrap(builderrors.ErrCodeFileUnmarshal,
				fmt.Sprintf("task at index %d (%s) is invalid", i, task.ID), err).WithIdentifier(task.ID)
		}
		if _, dup := edges[task.ID]; dup {
			return builderrors.NewDuplicateTask(task.ID)
		}
		edges[task.ID] = task.DependsOn
	}

	for _, task := range p.Tasks {
		for _, dep := range task.DependsOn {
			if _, ok := edges[dep]; !ok {
				return builderrors.NewUnknownTask(task.ID, dep)
			}
		}
	}

	g := newGraph(edges)
	if _, ok := g.order(); !ok {
		return builderrors.NewCyclicDependency(g.cycle())
	}
	return nil
}
