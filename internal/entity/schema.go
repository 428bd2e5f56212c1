package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefinitionFile is the root of a YAML entity definition file.
type DefinitionFile struct {
	// Version of the file format.
	Version string `yaml:"version"`
	// Entities defined in the file, in order.
	Entities []EntityDef `yaml:"entities"`
}

// EntityDef is the YAML form of an Entity.
type EntityDef struct {
	Name       string     `yaml:"name"`
	TypeParams string     `yaml:"type_params,omitempty"`
	Rules      string     `yaml:"rules"`
	Fields     []FieldDef `yaml:"fields"`
}

// FieldDef is the YAML form of a FieldDescriptor.
type FieldDef struct {
	Name             string     `yaml:"name"`
	Type             string     `yaml:"type"`
	Optional         bool       `yaml:"optional,omitempty"`
	WhenBase         OverlayDef `yaml:"when_base,omitempty"`
	WhenRequired     OverlayDef `yaml:"when_required,omitempty"`
	WhenOptional     OverlayDef `yaml:"when_optional,omitempty"`
	SkipDefaultAttrs bool       `yaml:"skip_default_attrs,omitempty"`
}

// OverlayDef decodes an overlay written as a scalar, a list of "key:value"
// scalars, single-key maps, or a mix of both.
type OverlayDef Overlay

// UnmarshalYAML implements custom YAML unmarshaling for OverlayDef.
// Accepts:
//   - Single string: "json:name"
//   - Single map: {json: name}
//   - Array of strings: ["json:name", "validate:required"]
//   - Array with maps: [{json: name}, "deprecated"]
func (o *OverlayDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		tag, err := decodeScalarTag(node)
		if err != nil {
			return err
		}

		*o = OverlayDef{tag}

		return nil

	case yaml.MappingNode:
		tags, err := decodeMapTags(node)
		if err != nil {
			return err
		}

		*o = tags

		return nil

	case yaml.SequenceNode:
		var tags OverlayDef

		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				tag, err := decodeScalarTag(item)
				if err != nil {
					return err
				}

				tags = append(tags, tag)

			case yaml.MappingNode:
				more, err := decodeMapTags(item)
				if err != nil {
					return err
				}

				tags = append(tags, more...)

			default:
				return fmt.Errorf("line %d: expected string or map in attribute list, got %v", item.Line, item.Kind)
			}
		}

		*o = tags

		return nil

	default:
		return fmt.Errorf("line %d: expected string, map, or array of attributes, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the overlay as a list of "key:value" strings.
func (o OverlayDef) MarshalYAML() (any, error) {
	if len(o) == 0 {
		return nil, nil
	}

	return Overlay(o).Strings(), nil
}

func decodeScalarTag(node *yaml.Node) (AttrTag, error) {
	var s string
	if err := node.Decode(&s); err != nil {
		return AttrTag{}, err
	}

	tag, err := ParseAttrTag(s)
	if err != nil {
		return AttrTag{}, fmt.Errorf("line %d: %w", node.Line, err)
	}

	return tag, nil
}

// decodeMapTags keeps the key order of the mapping node.
func decodeMapTags(node *yaml.Node) (OverlayDef, error) {
	tags := make(OverlayDef, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string

		if err := node.Content[i].Decode(&key); err != nil {
			return nil, fmt.Errorf("line %d: invalid attribute key: %w", node.Content[i].Line, err)
		}

		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: invalid attribute value: %w", node.Content[i+1].Line, err)
		}

		if key == "" {
			return nil, fmt.Errorf("line %d: attribute has no key", node.Content[i].Line)
		}

		tags = append(tags, AttrTag{Key: key, Value: value})
	}

	return tags, nil
}

// ToEntity converts the YAML definition into an Entity.
func (d *EntityDef) ToEntity(origin string) *Entity {
	e := &Entity{
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Origin:     origin,
		Rules:      d.Rules,
		Fields:     make([]FieldDescriptor, 0, len(d.Fields)),
	}

	for _, f := range d.Fields {
		e.Fields = append(e.Fields, FieldDescriptor{
			Name:             f.Name,
			Type:             f.Type,
			Optional:         f.Optional,
			BaseAttrs:        Overlay(f.WhenBase),
			RequiredAttrs:    Overlay(f.WhenRequired),
			OptionalAttrs:    Overlay(f.WhenOptional),
			SkipDefaultAttrs: f.SkipDefaultAttrs,
		})
	}

	return e
}
