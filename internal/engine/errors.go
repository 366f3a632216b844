package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no challenge exists for the requested id (or
// when no challenge has been created yet for "latest" lookups).
var ErrNotFound = errors.New("challenge not found")

// PlanShapeError indicates a generated plan whose shape cannot be normalized.
// It is fatal to the generation flow: no partial challenge is persisted.
type PlanShapeError struct {
	Reason string
}

func (e PlanShapeError) Error() string {
	return fmt.Sprintf("invalid plan shape: %s", e.Reason)
}

// QuotaError is returned when the weekly plan-generation allowance is spent.
type QuotaError struct {
	Limit   int
	ResetAt time.Time
}

func (e QuotaError) Error() string {
	return fmt.Sprintf("weekly generation limit of %d reached (resets %s)", e.Limit, e.ResetAt.Format(time.RFC3339))
}
