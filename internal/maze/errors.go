package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for maze loading and scene construction.
var (
	// ErrMazeFileUnavailable indicates the maze source could not be opened or read.
	ErrMazeFileUnavailable = errors.New("maze: file unavailable")

	// ErrMalformedMazeFile indicates the content does not match the declared dimensions
	// or contains symbols the parser does not accept.
	ErrMalformedMazeFile = errors.New("maze: malformed maze file")

	// ErrNoStartMarker indicates a grid without an 's' cell.
	ErrNoStartMarker = errors.New("maze: no start marker")

	// ErrMultipleStartMarkers indicates more than one 's' cell.
	ErrMultipleStartMarkers = errors.New("maze: multiple start markers")

	// ErrMultipleEndMarkers indicates more than one 'e' cell.
	ErrMultipleEndMarkers = errors.New("maze: multiple end markers")
)

// ParseError wraps ErrMalformedMazeFile with the offending line.
type ParseError struct {
	Line    int
	Reason  string
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %s", e.Wrapped, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

func malformed(line int, format string, args ...any) error {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...), Wrapped: ErrMalformedMazeFile}
}

// MarkerError reports a start/end marker count violation found while building a scene.
type MarkerError struct {
	Kind      EndpointKind
	Positions []Position
	Wrapped   error
}

func (e *MarkerError) Error() string {
	if len(e.Positions) == 0 {
		return e.Wrapped.Error()
	}
	parts := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%v: %s", e.Wrapped, strings.Join(parts, ", "))
}

func (e *MarkerError) Unwrap() error {
	return e.Wrapped
}
