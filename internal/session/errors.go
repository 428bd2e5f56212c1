package session

import (
	"fmt"

	"context-variants/internal/diagnostic"
)

// ValidationError reports every semantic problem found in one entity.
type ValidationError struct {
	Entity      string
	Diagnostics diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entity %s: %d validation error(s): %v", e.Entity, len(e.Diagnostics.Errors), e.Diagnostics.Error())
}
