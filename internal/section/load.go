package section

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a member section spec from a JSON or YAML file.
// The format is chosen by extension; .yaml and .yml are YAML, anything
// else is JSON.
func LoadFromFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &spec)
	default:
		err = json.Unmarshal(data, &spec)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if spec.Family == FamilyUnknown {
		return nil, fmt.Errorf("%s: section family is required", path)
	}
	if spec.Axis, err = ParseAxis(string(spec.Axis)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := ParseDims(spec.Family, spec.Dims, spec.MemberArea); err != nil {
		return nil, err
	}

	return &spec, nil
}
