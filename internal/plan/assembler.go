// Package plan assembles the ordered build plan from a loaded config and
// the resolved dependencies.
package plan

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/buildplan/internal/config"
	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/log"
	"github.com/felixgeelhaar/buildplan/internal/plugin"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
)

// Action kinds of the core tasks every plan has
const (
	ActionPrepare  = "prepare"
	ActionResolve  = "resolve"
	ActionAssemble = "assemble"
	ActionCustom   = "custom"
)

// Options controls plan assembly
type Options struct {
	// InvocationID overrides the generated per-invocation UUID
	InvocationID string
}

type node struct {
	task   Task
	before []string
}

// Assemble builds the task graph and sorts it topologically. Custom tasks
// may depend on assemble to run after it. A graph with a cycle, a duplicate
// task or a prerequisite naming no task fails without a plan.
func Assemble(ctx context.Context, cfg *config.Config, deps []resolve.ResolvedDependency, opts Options) (*Plan, error) {
	logger := log.FromContext(ctx).WithStage("plan")

	nodes := make(map[string]*node)
	add := func(t Task, before []string) error {
		if _, dup := nodes[t.ID]; dup {
			return builderrors.NewDuplicateTask(t.ID)
		}
		nodes[t.ID] = &node{task: t, before: before}
		return nil
	}

	names := dependencyNames(deps, nil)
	for _, t := range []Task{
		{ID: plugin.TaskPrepare, Action: Action{Kind: ActionPrepare}},
		{
			ID:        plugin.TaskResolveDependencies,
			DependsOn: []string{plugin.TaskPrepare},
			Action:    Action{Kind: ActionResolve, Dependencies: names},
		},
	} {
		if err := add(t, nil); err != nil {
			return nil, err
		}
	}

	for _, kind := range cfg.Plugins() {
		for _, tmpl := range kind.Tasks(cfg) {
			t := Task{
				ID:        tmpl.ID,
				DependsOn: append([]string(nil), tmpl.DependsOn...),
				Action: Action{
					Kind:         tmpl.Action,
					Settings:     append([]string(nil), tmpl.Settings...),
					Dependencies: dependencyNames(deps, tmpl.Consumes),
				},
			}
			if err := add(t, tmpl.Before); err != nil {
				return nil, err
			}
		}
		logger.Debug("plugin tasks added", "plugin", kind.ID())
	}

	for _, def := range cfg.Tasks() {
		if _, err := domain.NewTaskID(def.ID); err != nil {
			return nil, builderrors.Wrap(builderrors.ErrCodeConfigParse,
				fmt.Sprintf("invalid task id %q", def.ID), err).WithIdentifier(def.ID)
		}
		kind := def.Action
		if kind == "" {
			kind = ActionCustom
		}
		t := Task{
			ID:        def.ID,
			DependsOn: append([]string(nil), def.DependsOn...),
			Action: Action{
				Kind:         kind,
				Settings:     append([]string(nil), def.Settings...),
				Dependencies: append([]string(nil), def.Dependencies...),
			},
		}
		if err := add(t, nil); err != nil {
			return nil, err
		}
	}

	// ordering hints only apply when the later task is planned
	for _, id := range sortedKeys(nodes) {
		for _, b := range nodes[id].before {
			if later, ok := nodes[b]; ok {
				later.task.DependsOn = append(later.task.DependsOn, id)
			}
		}
	}

	for _, id := range sortedKeys(nodes) {
		n := nodes[id]
		n.task.DependsOn = dedupSorted(n.task.DependsOn)
		for _, dep := range n.task.DependsOn {
			if _, ok := nodes[dep]; !ok && dep != plugin.TaskAssemble {
				return nil, builderrors.NewUnknownTask(id, dep)
			}
		}
	}

	// assemble waits for the sinks of the tasks that do not run after it
	after := dependentsOf(nodes, plugin.TaskAssemble)
	edges := make(map[string][]string, len(nodes))
	for id, n := range nodes {
		if !after[id] {
			edges[id] = n.task.DependsOn
		}
	}
	if err := add(Task{
		ID:        plugin.TaskAssemble,
		DependsOn: dedupSorted(newGraph(edges).sinks()),
		Action:    Action{Kind: ActionAssemble},
	}, nil); err != nil {
		return nil, err
	}
	for id := range after {
		edges[id] = nodes[id].task.DependsOn
	}
	edges[plugin.TaskAssemble] = nodes[plugin.TaskAssemble].task.DependsOn

	g := newGraph(edges)
	order, ok := g.order()
	if !ok {
		return nil, builderrors.NewCyclicDependency(g.cycle())
	}

	p := &Plan{
		InvocationID: opts.InvocationID,
		Tasks:        make([]Task, 0, len(order)),
		Dependencies: append([]resolve.ResolvedDependency(nil), deps...),
		Settings:     snapshot(cfg),
	}
	if p.InvocationID == "" {
		p.InvocationID = uuid.NewString()
	}
	for _, id := range order {
		p.Tasks = append(p.Tasks, nodes[id].task)
	}

	fp, err := Fingerprint(p)
	if err != nil {
		return nil, err
	}
	p.Fingerprint = fp

	logger.Info("plan assembled", "tasks", len(p.Tasks), "dependencies", len(p.Dependencies), "fingerprint", p.Fingerprint)
	return p, nil
}

// dependentsOf returns the tasks that depend on id directly or through
// other tasks
func dependentsOf(nodes map[string]*node, id string) map[string]bool {
	enables := make(map[string][]string, len(nodes))
	for _, k := range sortedKeys(nodes) {
		for _, dep := range nodes[k].task.DependsOn {
			enables[dep] = append(enables[dep], k)
		}
	}

	out := make(map[string]bool)
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range enables[cur] {
			if !out[next] {
				out[next] = true
				queue = append(queue, next)
			}
		}
	}
	return out
}

// dependencyNames returns the sorted names of deps in the given scopes, or
// of all non-platform deps when scopes is nil.
func dependencyNames(deps []resolve.ResolvedDependency, scopes []domain.Scope) []string {
	if scopes == nil {
		scopes = []domain.Scope{domain.ScopeCompile, domain.ScopeRuntime}
	}
	var out []string
	for _, d := range deps {
		for _, s := range scopes {
			if d.Scope == s {
				out = append(out, d.Name.String())
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

func snapshot(cfg *config.Config) map[string]Setting {
	out := make(map[string]Setting)
	for _, name := range cfg.Names() {
		s, _ := cfg.Get(name)
		out[name] = Setting{Type: string(s.Type), Value: s.String()}
	}
	return out
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupSorted(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := append([]string(nil), in...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
