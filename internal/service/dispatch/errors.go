package dispatch

import (
	"errors"
	"strings"
)

var (
	// ErrOperatorDispatch means the internal alert could not be handed to the
	// mail transport. The submission is not retained anywhere.
	ErrOperatorDispatch = errors.New("operator notification failed")
	ErrUnknownForm      = errors.New("unknown form")
)

// MissingFieldsError lists the required fields a submission left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
