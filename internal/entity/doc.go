// Package entity describes the record whose fields are classified per
// context, and loads entity definitions from YAML files.
//
// An entity is an ordered list of FieldDescriptor values plus the raw rule
// source that classifies them. Field descriptors are immutable once loaded;
// the resolver works on its own clone.
//
// # Definition file
//
//	version: "1"
//	entities:
//	  - name: User
//	    rules: |
//	      Create: requires(name, email).excludes(id),
//	      Update: requires(id).optional(name, email),
//	      suffix = "Request"
//	    fields:
//	      - name: id
//	        type: uint64
//	      - name: email
//	        type: string
//	        when_optional: ["json:email,omitempty"]
//	        when_required: [{validate: required}]
//	        when_base: ["db:email"]
//	        skip_default_attrs: true
//
// # Attribute tags
//
// Overlays are ordered lists of opaque key/value tags. Their textual form is
// "key:value"; a bare "key" is a flag tag. The resolver never interprets them.
package entity
