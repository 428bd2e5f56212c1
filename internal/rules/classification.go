package rules

//go:generate go tool stringer -type=Classification -linecomment -output=classification_string.go

// Classification is the fate of a field within one context.
type Classification int

const (
	Required Classification = iota // required
	Optional                       // optional
	Excluded                       // excluded
)

// Classifications lists every classification in reporting order.
var Classifications = []Classification{Required, Optional, Excluded}

// ParseBehavior maps a default(...) argument to a classification.
// Both the verb ("requires", "excludes") and adjective forms are accepted.
func ParseBehavior(s string) (Classification, bool) {
	switch s {
	case "required", "requires":
		return Required, true
	case "optional":
		return Optional, true
	case "exclude", "excludes", "excluded":
		return Excluded, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Classification) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
