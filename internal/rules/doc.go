// Package rules parses the declarative rule language that classifies an
// entity's fields per context.
//
// A rule source is a comma-separated list of items:
//
//	Create: requires(name, email).excludes(id),
//	Update: requires(id).optional(all_fields().except(password)).default(exclude),
//	Read,
//	groups = (auth(user_id, token), profile(all_fields().except(id))),
//	optional_attrs = [json:",omitempty"],
//	suffix = "Request"
//
// "Name: chain" defines a context, "name = value" sets a directive and a bare
// name defines a context whose fields all fall back to the default. A chain
// is a sequence of requires(...), optional(...), excludes(...) and
// default(required|optional|exclude) calls; repeated calls accumulate.
//
// Arguments are field names, "field as Type" overrides, group names,
// "group.except(a, b)" and "all_fields(a).except(b)" wildcards.
//
// Parsing fails fast: the first structural problem is returned as an *Error
// carrying its source position.
package rules
