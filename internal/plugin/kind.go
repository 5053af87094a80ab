// Package plugin models the closed set of build plugins a configuration can
// declare. Each plugin kind contributes required settings and build tasks.
package plugin

import (
	"sort"
	"strings"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

// Settings is the read view of loaded configuration a plugin needs to
// decide which tasks it contributes.
type Settings interface {
	Has(name string) bool
	Bool(name string) bool
}

// TaskTemplate is a task contributed by a plugin.
type TaskTemplate struct {
	ID        string
	DependsOn []string
	// Before lists tasks that must run after this one; the assembler turns
	// each entry into a prerequisite edge on that task.
	Before []string
	Action string
	// Settings are the setting names the action reads.
	Settings []string
	// Consumes selects resolved dependencies by scope.
	Consumes []domain.Scope
}

// Kind is one member of the closed set of plugin kinds.
type Kind interface {
	// ID is the short canonical name used in configs and plans
	ID() string
	// Coordinates are the Gradle plugin IDs that declare this kind
	Coordinates() []string
	// Requires lists kinds that must be declared alongside this one
	Requires() []string
	// RequiredSettings lists settings this kind cannot work without
	RequiredSettings() []string
	// Tasks returns the tasks contributed for the given settings
	Tasks(s Settings) []TaskTemplate

	sealed()
}

// known is the closed set, in canonical order.
var known = []Kind{
	AndroidApplication{},
	KotlinAndroid{},
	GoogleServices{},
	Flutter{},
}

// Known returns every plugin kind in canonical order
func Known() []Kind {
	out := make([]Kind, len(known))
	copy(out, known)
	return out
}

// KnownIDs returns the canonical IDs of all plugin kinds
func KnownIDs() []string {
	ids := make([]string, 0, len(known))
	for _, k := range known {
		ids = append(ids, k.ID())
	}
	return ids
}

// Parse maps a plugin declaration (short ID or Gradle plugin ID) onto its kind
func Parse(declaration string) (Kind, error) {
	d := strings.TrimSpace(declaration)
	for _, k := range known {
		if d == k.ID() {
			return k, nil
		}
		for _, c := range k.Coordinates() {
			if d == c {
				return k, nil
			}
		}
	}
	return nil, builderrors.NewUnknownPlugin(d, KnownIDs())
}

// ParseList parses declarations, drops duplicates, checks that every kind's
// requirements are declared and returns the kinds in canonical order.
func ParseList(declarations []string) ([]Kind, error) {
	seen := make(map[string]Kind)
	for _, d := range declarations {
		if strings.TrimSpace(d) == "" {
			continue
		}
		k, err := Parse(d)
		if err != nil {
			return nil, err
		}
		seen[k.ID()] = k
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, req := range seen[id].Requires() {
			if _, ok := seen[req]; !ok {
				return nil, builderrors.NewPluginRequirement(id, req)
			}
		}
	}

	out := make([]Kind, 0, len(seen))
	for _, k := range known {
		if _, ok := seen[k.ID()]; ok {
			out = append(out, k)
		}
	}
	return out, nil
}
