package config

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/plugin"
)

// PluginsSetting is the setting listing plugin declarations
const PluginsSetting = "plugins"

// SourceDefault marks settings filled in from a schema default
const SourceDefault = "default"

// Raw is an unchecked configuration as read from a file
type Raw struct {
	Source string
	Values map[string]cty.Value
	Tasks  []TaskDef
}

// FromMap builds a Raw from plain Go values (strings, numbers, bools and
// lists of those).
func FromMap(source string, values map[string]any) (Raw, error) {
	raw := Raw{Source: source, Values: make(map[string]cty.Value, len(values))}
	for k, v := range values {
		cv, err := ToValue(v)
		if err != nil {
			return Raw{}, builderrors.NewTypeMismatch(k, "string, int or bool", v, err)
		}
		raw.Values[k] = cv
	}
	return raw, nil
}

// Load checks raw values against the schema and returns the typed config.
//
// Errors are reported for the first offending setting in name order so the
// same input always yields the same error.
func Load(raw Raw, schema *Schema) (*Config, error) {
	if schema == nil {
		schema = DefaultSchema()
	}

	var kinds []plugin.Kind
	if v, ok := raw.Values[PluginsSetting]; ok && !v.IsNull() {
		var err error
		if kinds, err = parsePlugins(v); err != nil {
			return nil, err
		}
	}
	for _, k := range kinds {
		schema = schema.Require(k.RequiredSettings()...)
	}

	cfg := &Config{
		settings: make(map[string]Setting, len(raw.Values)),
		plugins:  kinds,
		tasks:    append([]TaskDef(nil), raw.Tasks...),
	}

	for _, name := range schema.Names() {
		def, _ := schema.Lookup(name)
		v, ok := raw.Values[name]
		if !ok || v.IsNull() {
			switch {
			case def.Default != nil:
				cfg.settings[name] = Setting{
					Name:     name,
					Type:     def.Type,
					Value:    def.Default,
					Required: def.Required,
					Source:   SourceDefault,
				}
			case def.Required:
				return nil, builderrors.NewMissingRequiredSetting(name)
			}
			continue
		}

		value, err := coerce(v, def.Type)
		if err != nil {
			return nil, builderrors.NewTypeMismatch(name, string(def.Type), display(v), err)
		}
		cfg.settings[name] = Setting{
			Name:     name,
			Type:     def.Type,
			Value:    value,
			Required: def.Required,
			Source:   raw.Source,
		}
	}

	extra := make([]string, 0)
	for name := range raw.Values {
		if _, declared := schema.Lookup(name); !declared {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		v := raw.Values[name]
		if v.IsNull() {
			continue
		}
		ty, value, err := infer(v)
		if err != nil {
			return nil, builderrors.NewTypeMismatch(name, "string, int or bool", display(v), err)
		}
		cfg.settings[name] = Setting{Name: name, Type: ty, Value: value, Source: raw.Source}
	}

	return cfg, nil
}

func parsePlugins(v cty.Value) ([]plugin.Kind, error) {
	s, err := coerce(v, TypeString)
	if err != nil {
		return nil, builderrors.NewTypeMismatch(PluginsSetting, string(TypeString), display(v), err)
	}
	return plugin.ParseList(splitList(s.(string)))
}

// display renders a raw value for error messages
func display(v cty.Value) string {
	if v.IsNull() || !v.IsWhollyKnown() {
		return "null"
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case ty == cty.Bool:
		return fmt.Sprintf("%t", v.True())
	default:
		return ty.FriendlyName()
	}
}
