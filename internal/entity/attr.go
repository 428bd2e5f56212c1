package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AttrTag is one opaque metadata tag in an attribute overlay.
type AttrTag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// String returns the textual "key:value" form.
func (a AttrTag) String() string {
	if a.Value == "" {
		return a.Key
	}

	return a.Key + ":" + a.Value
}

// Overlay is an ordered list of attribute tags.
type Overlay []AttrTag

// Concat returns a new overlay holding o followed by others, in order.
// Tags with the same key are all kept.
func (o Overlay) Concat(others ...Overlay) Overlay {
	n := len(o)
	for _, other := range others {
		n += len(other)
	}

	if n == 0 {
		return nil
	}

	out := make(Overlay, 0, n)
	out = append(out, o...)

	for _, other := range others {
		out = append(out, other...)
	}

	return out
}

// Strings returns the textual form of every tag.
func (o Overlay) Strings() []string {
	out := make([]string, len(o))
	for i, a := range o {
		out[i] = a.String()
	}

	return out
}

// ParseAttrTag parses "key:value" or "key". A double-quoted value, as
// copied from a Go struct tag, is unquoted.
func ParseAttrTag(s string) (AttrTag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AttrTag{}, errors.New("empty attribute tag")
	}

	key, value, _ := strings.Cut(s, ":")
	key = strings.TrimSpace(key)

	if key == "" {
		return AttrTag{}, fmt.Errorf("attribute tag %q has no key", s)
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		unq, err := strconv.Unquote(value)
		if err != nil {
			return AttrTag{}, fmt.Errorf("attribute tag %q: %w", s, err)
		}

		value = unq
	}

	return AttrTag{Key: key, Value: value}, nil
}

// ParseOverlay parses a list of tags separated by sep. Empty items are skipped.
func ParseOverlay(s, sep string) (Overlay, error) {
	var out Overlay

	for item := range strings.SplitSeq(s, sep) {
		if strings.TrimSpace(item) == "" {
			continue
		}

		tag, err := ParseAttrTag(item)
		if err != nil {
			return nil, err
		}

		out = append(out, tag)
	}

	return out, nil
}
