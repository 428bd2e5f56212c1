package analyze

import (
	"reflect"

	"context-variants/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "example.com/app/models"
	Name    string // e.g., "User"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a field type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map type
	TypeKindNamed             // named non-struct type (e.g., time.Duration)
	TypeKindParam             // type parameter of a generic struct
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindNamed:
		return "named"
	case TypeKindParam:
		return "param"
	default:
		return common.UnknownStr
	}
}

// StructInfo describes one struct found in a loaded package.
type StructInfo struct {
	ID TypeID
	// TypeParams is the rendered type parameter list, e.g. "[T any]".
	TypeParams string
	// Rules holds the rule lines from the doc comment, in order.
	Rules []string
	// Fields in declaration order, embedded fields excluded.
	Fields []FieldInfo
	// Position is "file:line" of the type declaration.
	Position string
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     string            // Type rendered relative to the declaring package
	Kind     TypeKind          // Kind of the field type
	Tag      reflect.StructTag // Raw struct tag
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// IsOptional reports whether the declared type already denotes optionality.
func (f *FieldInfo) IsOptional() bool {
	return f.Kind == TypeKindPointer
}
