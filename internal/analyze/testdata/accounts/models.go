// Package accounts holds annotated structs for loader tests.
package accounts

import "time"

// Account is a user account.
//
//variants: prefix = "Account",
//variants: optional_attrs = [json:",omitempty"],
//variants: Create: requires(Email, Name).excludes(ID, CreatedAt, internal),
//variants: Update: requires(ID).optional(Email, Name, Nickname).excludes(CreatedAt, internal)
type Account struct {
	ID        uint64    `when_base:"db:id"`
	Email     string    `when_required:"validate:required;json:email" when_optional:"json:email"`
	Name      string
	Nickname  *string   `variants:"nodefaults"`
	CreatedAt time.Time `when_base:"db:created_at"`
	internal  int
	Audit
}

// Audit is embedded and skipped.
type Audit struct {
	UpdatedBy string
}

type (
	// Page is generic.
	//
	//variants: List: requires(Items).optional(Next)
	Page[T any, K comparable] struct {
		Items []T
		Next  map[K]T
	}

	// Plain carries no rules.
	Plain struct {
		Value int
	}
)

// Broken has a malformed tag overlay.
//
//variants: A: requires(X)
type Broken struct {
	X int `when_base:":nokey"`
}
