package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/buildplan/internal/plugin"
)

// Type is the declared type of a setting
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
)

// Setting is one loaded configuration value. Value holds a string, an int
// or a bool according to Type.
type Setting struct {
	Name     string `json:"name" yaml:"name"`
	Type     Type   `json:"type" yaml:"type"`
	Value    any    `json:"value" yaml:"value"`
	Required bool   `json:"required" yaml:"required"`
	Source   string `json:"source" yaml:"source"`
}

// String renders the value the way it would be written in a key/value file
func (s Setting) String() string {
	switch v := s.Value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// TaskDef is a custom task declared in the config file
type TaskDef struct {
	ID           string   `json:"id" yaml:"id"`
	DependsOn    []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Action       string   `json:"action,omitempty" yaml:"action,omitempty"`
	Settings     []string `json:"settings,omitempty" yaml:"settings,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Config is the loaded, immutable configuration.
type Config struct {
	settings map[string]Setting
	plugins  []plugin.Kind
	tasks    []TaskDef
}

// Get returns a setting by name
func (c *Config) Get(name string) (Setting, bool) {
	s, ok := c.settings[name]
	return s, ok
}

// Has reports whether a setting is present
func (c *Config) Has(name string) bool {
	_, ok := c.settings[name]
	return ok
}

// Bool returns a bool setting, false when absent or not a bool
func (c *Config) Bool(name string) bool {
	b, _ := c.settings[name].Value.(bool)
	return b
}

// Int returns an int setting
func (c *Config) Int(name string) (int, bool) {
	i, ok := c.settings[name].Value.(int)
	return i, ok
}

// String returns a setting rendered as a string
func (c *Config) String(name string) string {
	return c.settings[name].String()
}

// List splits a comma separated string setting into its trimmed items
func (c *Config) List(name string) []string {
	return splitList(c.String(name))
}

// Names returns setting names in sorted order
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.settings))
	for n := range c.settings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Settings returns a copy of all settings
func (c *Config) Settings() map[string]Setting {
	out := make(map[string]Setting, len(c.settings))
	for k, v := range c.settings {
		out[k] = v
	}
	return out
}

// Plugins returns the declared plugin kinds in canonical order
func (c *Config) Plugins() []plugin.Kind {
	out := make([]plugin.Kind, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// Tasks returns the custom task definitions
func (c *Config) Tasks() []TaskDef {
	out := make([]TaskDef, len(c.tasks))
	copy(out, c.tasks)
	return out
}

var _ plugin.Settings = (*Config)(nil)

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
