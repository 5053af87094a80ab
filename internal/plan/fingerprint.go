package plan

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
	"github.com/felixgeelhaar/buildplan/internal/resolve"
)

// canonical is the hashed form of a plan. It leaves out the invocation ID
// so identical inputs always yield the same fingerprint.
type canonical struct {
	Tasks        []Task                       `json:"tasks"`
	Dependencies []resolve.ResolvedDependency `json:"dependencies"`
	Settings     map[string]Setting           `json:"settings"`
}

// Canonicalize returns the canonical JSON form of the plan content.
// encoding/json writes struct fields in declaration order and map keys
// sorted, which makes the output stable.
func Canonicalize(p *Plan) ([]byte, error) {
	return json.Marshal(canonical{
		Tasks:        p.Tasks,
		Dependencies: p.Dependencies,
		Settings:     p.Settings,
	})
}

// Fingerprint computes the blake3 hash of the canonical plan
func Fingerprint(p *Plan) (string, error) {
	data, err := Canonicalize(p)
	if err != nil {
		return "", builderrors.Wrap(builderrors.ErrCodeFileMarshal, "canonicalize plan", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(data); err != nil {
		return "", builderrors.Wrap(builderrors.ErrCodeFileMarshal, "hash plan", err)
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
