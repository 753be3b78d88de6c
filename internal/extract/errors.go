package extract

import (
	"errors"
	"fmt"

	"aegis/internal/diag"
)

// ErrNoDefinition means the source parsed but has no function.
// ParseError unwraps to ErrNoDefinition too.
var ErrNoDefinition = errors.New("no function definition found")

var ErrUnknownEngine = errors.New("unknown extraction engine")

// ParseError means the source is not valid Python
// (or the engine crashed while parsing).
type ParseError struct {
	Engine string
	Bag    *diag.Bag
	Panic  any
}

func (e *ParseError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s engine failed: %v", e.Engine, e.Panic)
	}
	if e.Bag != nil {
		for _, d := range e.Bag.Items() {
			if d.Severity == diag.SevError {
				return "syntax error: " + d.Message
			}
		}
	}
	return "syntax error"
}

func (e *ParseError) Unwrap() error { return ErrNoDefinition }
