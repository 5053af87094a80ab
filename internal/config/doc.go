// Package config loads declarative build settings into a typed, immutable
// model.
//
// A raw mapping of setting names to untyped values (read from a key/value,
// JSON, YAML or HCL file) is checked against a Schema. Declared settings are
// coerced to their type; required settings that are absent fail the load
// with CONFIG-001 and values that cannot be coerced fail with CONFIG-002.
// Settings the schema does not declare are kept with the type of their raw
// value.
//
// Plugin declarations in the "plugins" setting are parsed into the closed
// set of plugin kinds, and each kind's required settings are added to the
// schema before the check.
package config
