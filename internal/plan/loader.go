package plan

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/fileformat"
)

// LoadPlan reads a plan from a JSON or YAML file and checks its structure
func LoadPlan(path string) (*Plan, error) {
	data, err := fileformat.Read(path)
	if err != nil {
		return nil, err
	}

	var p Plan
	format := fileformat.Detect(path)
	switch format {
	case fileformat.YAML:
		err = yaml.Unmarshal(data, &p)
	default:
		format = fileformat.JSON
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, builderrors.NewFileUnmarshalError(path, format.Name(), err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes a plan as indented JSON or as YAML
func Marshal(p *Plan, format fileformat.Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case fileformat.YAML:
		data, err = yaml.Marshal(p)
	case fileformat.JSON:
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	default:
		return nil, fmt.Errorf("plans are written as JSON or YAML, not %s", format.Name())
	}
	if err != nil {
		return nil, builderrors.Wrap(builderrors.ErrCodeFileMarshal, "marshal plan", err)
	}
	return data, nil
}

// SavePlan writes a plan, YAML for .yaml/.yml paths and JSON otherwise
func SavePlan(p *Plan, path string) error {
	format := fileformat.Detect(path)
	if format != fileformat.YAML {
		format = fileformat.JSON
	}
	data, err := Marshal(p, format)
	if err != nil {
		return err
	}
	return fileformat.Write(path, data)
}
