package kimai

import (
	"errors"
	"fmt"
)

// ErrLogNotFound marks a missing Kimai export file. The caller cannot compute
// anything without the primary log, so this is fatal and mapped to its own
// exit code at the CLI boundary.
var ErrLogNotFound = errors.New("kimai time log not found")

// ErrEmptyLog marks an export file that carries a header but no sessions
var ErrEmptyLog = errors.New("kimai time log contains no sessions")

// ErrRowOrder marks an export violating the newest-first row order contract.
// The covered period is derived from the first and last row; an ascending
// export would silently invert it, so the violation is raised instead.
var ErrRowOrder = errors.New("kimai rows must be ordered newest first")

// ParseError reports a malformed field in the Kimai export
type ParseError struct {
	Field string
	Value string
	Row   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %s value %q", e.Row, e.Field, e.Value)
}

// MissingColumnError reports a required column absent from the export header
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q missing from kimai export", e.Column)
}
