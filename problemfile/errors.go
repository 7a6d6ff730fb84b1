package problemfile

import (
	"errors"
	"fmt"
)

// Kind classifies a LoadError.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindUnsupported Kind = "unsupported_format"
	KindDecode      Kind = "decode"
	KindInvalid     Kind = "invalid_problem"
)

// ErrUnsupportedFormat is wrapped by LoadError when the format cannot be
// determined from the file extension or is unknown.
var ErrUnsupportedFormat = errors.New("problemfile: unsupported format")

// LoadError wraps an underlying error with the operation, the file and a kind.
// Problem validation errors from package problem stay reachable through
// errors.Is (for example problem.ErrMalformedCost).
type LoadError struct {
	Op   string
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a LoadError of the given kind.
func IsKind(err error, kind Kind) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}
