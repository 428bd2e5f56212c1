package session

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ExportVersion is the version of the exported document format.
const ExportVersion = "1"

// Bundle is the exported form of one or more resolved tables.
type Bundle struct {
	Version  string     `json:"version" yaml:"version"`
	Entities []Document `json:"entities" yaml:"entities"`
}

// Document is the exported form of one resolved table.
type Document struct {
	Entity       string       `json:"entity" yaml:"entity"`
	TypeParams   string       `json:"type_params,omitempty" yaml:"type_params,omitempty"`
	BuildBase    bool         `json:"build_base" yaml:"build_base"`
	OptionalBase bool         `json:"optional_base" yaml:"optional_base"`
	Base         []FieldDoc   `json:"base,omitempty" yaml:"base,omitempty"`
	Contexts     []ContextDoc `json:"contexts" yaml:"contexts"`
	Warnings     []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ContextDoc is one exported context.
type ContextDoc struct {
	Context string     `json:"context" yaml:"context"`
	Name    string     `json:"name" yaml:"name"`
	Fields  []FieldDoc `json:"fields" yaml:"fields"`
}

// FieldDoc is one exported field.
type FieldDoc struct {
	Field          string   `json:"field" yaml:"field"`
	Classification string   `json:"classification,omitempty" yaml:"classification,omitempty"`
	Type           string   `json:"type" yaml:"type"`
	Overridden     bool     `json:"overridden,omitempty" yaml:"overridden,omitempty"`
	Attrs          []string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// NewDocument converts a table into its exported form.
func NewDocument(t *Table) Document {
	doc := Document{
		Entity:       t.Entity,
		TypeParams:   t.TypeParams,
		BuildBase:    t.BuildBase,
		OptionalBase: t.OptionalBase,
		Contexts:     make([]ContextDoc, 0, len(t.Contexts)),
	}

	for _, b := range t.Base {
		doc.Base = append(doc.Base, FieldDoc{Field: b.Field, Type: b.Type, Attrs: attrStrings(b.Attrs.Strings())})
	}

	for _, ct := range t.Contexts {
		cd := ContextDoc{Context: ct.Context, Name: ct.Name, Fields: make([]FieldDoc, 0, len(ct.Fields))}

		for _, f := range ct.Fields {
			cd.Fields = append(cd.Fields, FieldDoc{
				Field:          f.Field,
				Classification: f.Classification.String(),
				Type:           f.Type,
				Overridden:     f.Overridden,
				Attrs:          attrStrings(f.Attrs.Strings()),
			})
		}

		doc.Contexts = append(doc.Contexts, cd)
	}

	for _, w := range t.Warnings {
		doc.Warnings = append(doc.Warnings, w.String())
	}

	return doc
}

func attrStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	return s
}

// NewBundle converts tables into one exported bundle, in order.
func NewBundle(tables ...*Table) Bundle {
	b := Bundle{Version: ExportVersion, Entities: make([]Document, 0, len(tables))}
	for _, t := range tables {
		b.Entities = append(b.Entities, NewDocument(t))
	}

	return b
}

// ExportYAML renders tables as a YAML bundle.
func ExportYAML(tables ...*Table) ([]byte, error) {
	return yaml.Marshal(NewBundle(tables...))
}

// ExportJSON renders tables as an indented JSON bundle.
func ExportJSON(tables ...*Table) ([]byte, error) {
	out, err := json.MarshalIndent(NewBundle(tables...), "", "  ")
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}
