package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/fileformat"
)

// Repository reads raw configurations
type Repository interface {
	Load(path string) (Raw, error)
}

// FileRepository reads raw configurations from files, picking the format
// by extension
type FileRepository struct{}

// NewFileRepository creates a new file-based config repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads a config file without checking it against a schema
func (r *FileRepository) Load(path string) (Raw, error) {
	data, err := fileformat.Read(path)
	if err != nil {
		return Raw{}, err
	}
	return Parse(path, fileformat.Detect(path), data)
}

var defaultRepository = NewFileRepository()

// ReadFile reads a config file using the default repository
func ReadFile(path string) (Raw, error) {
	return defaultRepository.Load(path)
}

// LoadFile reads a config file and checks it against the schema
func LoadFile(path string, schema *Schema) (*Config, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(raw, schema)
}

// Parse decodes config data in the given format. path is used as the
// setting source and in error messages.
func Parse(path string, format fileformat.Format, data []byte) (Raw, error) {
	switch format {
	case fileformat.JSON:
		return parseJSON(path, data)
	case fileformat.YAML:
		return parseYAML(path, data)
	case fileformat.HCL:
		return parseHCL(path, data)
	default:
		return parseKeyValue(path, data)
	}
}

const (
	tasksKey    = "tasks"
	settingsKey = "settings"
	taskPrefix  = "task."
)

func parseKeyValue(path string, data []byte) (Raw, error) {
	raw := Raw{Source: path, Values: make(map[string]cty.Value)}
	tasks := make(map[string]*TaskDef)
	var order []string
	lineOf := make(map[string]int)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Raw{}, builderrors.NewConfigParseError(path, n, fmt.Errorf("expected key = value"))
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		if key == "" {
			return Raw{}, builderrors.NewConfigParseError(path, n, fmt.Errorf("empty key"))
		}
		if first, dup := lineOf[key]; dup {
			return Raw{}, builderrors.NewConfigParseError(path, n,
				fmt.Errorf("duplicate key %q, first set on line %d", key, first))
		}
		lineOf[key] = n

		if !strings.HasPrefix(key, taskPrefix) {
			raw.Values[key] = cty.StringVal(value)
			continue
		}

		id, field, ok := strings.Cut(strings.TrimPrefix(key, taskPrefix), ".")
		if !ok || id == "" {
			return Raw{}, builderrors.NewConfigParseError(path, n,
				fmt.Errorf("task keys have the form task.<id>.<field>"))
		}
		def, seen := tasks[id]
		if !seen {
			def = &TaskDef{ID: id}
			tasks[id] = def
			order = append(order, id)
		}
		switch field {
		case "depends_on":
			def.DependsOn = splitList(value)
		case "action":
			def.Action = value
		case "settings":
			def.Settings = splitList(value)
		case "dependencies":
			def.Dependencies = splitList(value)
		default:
			return Raw{}, builderrors.NewConfigParseError(path, n, fmt.Errorf("unknown task field %q", field))
		}
	}
	if err := scanner.Err(); err != nil {
		return Raw{}, builderrors.NewFileReadError(path, err)
	}

	for _, id := range order {
		raw.Tasks = append(raw.Tasks, *tasks[id])
	}
	return raw, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func parseJSON(path string, data []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return Raw{}, builderrors.NewFileUnmarshalError(path, fileformat.JSON.Name(), err)
	}
	return fromDocument(path, doc, json.Marshal, json.Unmarshal)
}

func parseYAML(path string, data []byte) (Raw, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Raw{}, builderrors.NewFileUnmarshalError(path, fileformat.YAML.Name(), err)
	}
	return fromDocument(path, doc, yaml.Marshal, yaml.Unmarshal)
}

// fromDocument splits a decoded JSON or YAML document into settings and
// task definitions. Settings live under "settings" when that key holds a
// mapping, and at the top level otherwise.
func fromDocument(
	path string,
	doc map[string]any,
	marshal func(any) ([]byte, error),
	unmarshal func([]byte, any) error,
) (Raw, error) {
	var tasks []TaskDef
	if t, ok := doc[tasksKey]; ok && t != nil {
		b, err := marshal(t)
		if err == nil {
			err = unmarshal(b, &tasks)
		}
		if err != nil {
			return Raw{}, builderrors.NewConfigParseError(path, 0, fmt.Errorf("tasks: %w", err))
		}
	}

	values := doc
	if s, ok := doc[settingsKey].(map[string]any); ok {
		values = s
	}

	settings := make(map[string]any, len(values))
	for k, v := range values {
		if k == tasksKey {
			continue
		}
		settings[k] = v
	}

	raw, err := FromMap(path, settings)
	if err != nil {
		return Raw{}, err
	}
	raw.Tasks = tasks
	return raw, nil
}

type hclTask struct {
	ID           string   `hcl:"id,label"`
	DependsOn    []string `hcl:"depends_on,optional"`
	Action       string   `hcl:"action,optional"`
	Settings     []string `hcl:"settings,optional"`
	Dependencies []string `hcl:"dependencies,optional"`
}

type hclFile struct {
	Tasks  []hclTask `hcl:"task,block"`
	Remain hcl.Body  `hcl:",remain"`
}

func parseHCL(path string, data []byte) (Raw, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return Raw{}, hclError(path, diags)
	}

	var doc hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return Raw{}, hclError(path, diags)
	}

	// Remain still carries the decoded task blocks, which JustAttributes
	// rejects, so settings are read from the top-level attributes.
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return Raw{}, builderrors.NewConfigParseError(path, 0, fmt.Errorf("unsupported HCL body %T", file.Body))
	}

	raw := Raw{Source: path, Values: make(map[string]cty.Value, len(body.Attributes))}
	for name, attr := range body.Attributes {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Raw{}, hclError(path, diags)
		}
		raw.Values[name] = v
	}
	for _, t := range doc.Tasks {
		raw.Tasks = append(raw.Tasks, TaskDef(t))
	}
	return raw, nil
}

func hclError(path string, diags hcl.Diagnostics) error {
	line := 0
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			line = d.Subject.Start.Line
			break
		}
	}
	return builderrors.NewConfigParseError(path, line, diags)
}
