package config

import "sort"

// SettingDef declares a known setting
type SettingDef struct {
	Name     string
	Type     Type
	Required bool
	// Default is used when the setting is absent; nil means no default
	Default any
}

// Schema is the set of declared settings
type Schema struct {
	defs map[string]SettingDef
}

// NewSchema creates a schema from definitions
func NewSchema(defs ...SettingDef) *Schema {
	s := &Schema{defs: make(map[string]SettingDef, len(defs))}
	for _, d := range defs {
		s.defs[d.Name] = d
	}
	return s
}

// DefaultSchema declares the settings of an Android application module
func DefaultSchema() *Schema {
	return NewSchema(
		SettingDef{Name: "plugins", Type: TypeString},
		SettingDef{Name: "namespace", Type: TypeString},
		SettingDef{Name: "applicationId", Type: TypeString},
		SettingDef{Name: "compileSdk", Type: TypeInt},
		SettingDef{Name: "minSdk", Type: TypeInt},
		SettingDef{Name: "targetSdk", Type: TypeInt},
		SettingDef{Name: "versionCode", Type: TypeInt},
		SettingDef{Name: "versionName", Type: TypeString},
		SettingDef{Name: "ndkVersion", Type: TypeString},
		SettingDef{Name: "multiDexEnabled", Type: TypeBool, Default: false},
		SettingDef{Name: "minifyEnabled", Type: TypeBool, Default: false},
		SettingDef{Name: "javaVersion", Type: TypeString},
		SettingDef{Name: "jvmTarget", Type: TypeString},
		SettingDef{Name: "signingConfig", Type: TypeString},
		SettingDef{Name: "proguardFiles", Type: TypeString},
		SettingDef{Name: "flutterSource", Type: TypeString},
	)
}

// Lookup returns the definition of a setting
func (s *Schema) Lookup(name string) (SettingDef, bool) {
	d, ok := s.defs[name]
	return d, ok
}

// Require returns a copy of the schema with the named settings marked
// required. Undeclared names become required strings.
func (s *Schema) Require(names ...string) *Schema {
	out := &Schema{defs: make(map[string]SettingDef, len(s.defs)+len(names))}
	for k, v := range s.defs {
		out.defs[k] = v
	}
	for _, n := range names {
		d, ok := out.defs[n]
		if !ok {
			d = SettingDef{Name: n, Type: TypeString}
		}
		d.Required = true
		out.defs[n] = d
	}
	return out
}

// Names returns the declared names in sorted order
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.defs))
	for n := range s.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
