// Package analyze loads Go packages and turns annotated structs into
// entities.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A struct is
// picked up when its doc comment carries rule lines:
//
//	//variants: Create: requires(Name, Email).excludes(ID),
//	//variants: Update: requires(ID).optional(all_fields().except(ID))
//	type User struct {
//		ID    uint64
//		Name  string  `when_required:"validate:required"`
//		Email *string `when_optional:"json:email,omitempty" variants:"nodefaults"`
//	}
//
// Key types:
//   - TypeID: package import path + type name
//   - StructInfo: one loaded struct with its rule lines and fields
//   - FieldInfo: field name, rendered type, kind and tags
package analyze
