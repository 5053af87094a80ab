package domain

import (
	"fmt"
	"strings"
)

// Scope says where a dependency is needed.
type Scope string

const (
	ScopeCompile  Scope = "compile"  // needed to compile and at runtime
	ScopeRuntime  Scope = "runtime"  // needed at runtime only
	ScopePlatform Scope = "platform" // bill of materials, manages versions of other libraries
)

// scopeAliases maps Gradle configuration names onto scopes.
var scopeAliases = map[string]Scope{
	"compile":        ScopeCompile,
	"implementation": ScopeCompile,
	"api":            ScopeCompile,
	"runtime":        ScopeRuntime,
	"runtimeonly":    ScopeRuntime,
	"platform":       ScopePlatform,
	"bom":            ScopePlatform,
}

// ParseScope parses a scope name. The empty string means compile.
func ParseScope(value string) (Scope, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ScopeCompile, nil
	}
	if s, ok := scopeAliases[v]; ok {
		return s, nil
	}
	return "", fmt.Errorf("invalid scope %q: must be compile, runtime, or platform", value)
}

// Validate checks if the scope is one of the known scopes
func (s Scope) Validate() error {
	switch s {
	case ScopeCompile, ScopeRuntime, ScopePlatform:
		return nil
	default:
		return fmt.Errorf("invalid scope %q: must be compile, runtime, or platform", string(s))
	}
}

// String returns the string representation
func (s Scope) String() string {
	return string(s)
}

// Merge returns the wider of two scopes. A library requested at compile
// scope by one spec and runtime by another is needed at compile scope.
func (s Scope) Merge(other Scope) Scope {
	if scopeRank(other) > scopeRank(s) {
		return other
	}
	return s
}

func scopeRank(s Scope) int {
	switch s {
	case ScopePlatform:
		return 3
	case ScopeCompile:
		return 2
	case ScopeRuntime:
		return 1
	default:
		return 0
	}
}
