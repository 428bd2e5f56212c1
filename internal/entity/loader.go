package entity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML definition file from the given path.
func LoadFile(path string) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a DefinitionFile.
func Parse(data []byte) (*DefinitionFile, error) {
	var df DefinitionFile

	err := yaml.Unmarshal(data, &df)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	applyDefaults(&df)

	return &df, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(df *DefinitionFile) {
	if df.Version == "" {
		df.Version = "1"
	}
}

// ToEntities converts and validates every entity in the file.
// origin is recorded on each entity as "<origin>#<name>".
func (df *DefinitionFile) ToEntities(origin string) ([]*Entity, error) {
	if df.Version != "1" {
		return nil, fmt.Errorf("%s: unsupported definition version %q", origin, df.Version)
	}

	out := make([]*Entity, 0, len(df.Entities))
	seen := make(map[string]struct{}, len(df.Entities))

	for i := range df.Entities {
		def := &df.Entities[i]

		e := def.ToEntity(origin + "#" + def.Name)
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", origin, err)
		}

		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate entity %q", origin, e.Name)
		}

		seen[e.Name] = struct{}{}
		out = append(out, e)
	}

	return out, nil
}

// LoadEntities reads a definition file and returns its entities.
func LoadEntities(path string) ([]*Entity, error) {
	df, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return df.ToEntities(path)
}

// Marshal serializes a DefinitionFile to YAML.
func Marshal(df *DefinitionFile) ([]byte, error) {
	return yaml.Marshal(df)
}
