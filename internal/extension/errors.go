package extension

import (
	"errors"
	"fmt"
)

// Kind classifies extension errors.
type Kind int

const (
	// KindDiscovery means the cu binary could not be located.
	KindDiscovery Kind = iota + 1
	// KindSettings means a settings payload did not match the settings shape.
	KindSettings
	// KindSchema means the settings schema could not be serialized.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindDiscovery:
		return "discovery"
	case KindSettings:
		return "settings"
	case KindSchema:
		return "schema"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Discovery failure causes. Each produces a distinct message.
var (
	// ErrLookupFailed: the lookup process could not be started.
	ErrLookupFailed = errors.New("finding cu in PATH")
	// ErrLookupOutput: the lookup output is not valid text.
	ErrLookupOutput = errors.New("parsing cu path")
	// ErrNotFound: the lookup ran but produced no path.
	ErrNotFound = errors.New("failed to find cu path")
)

// Error is returned by Extension operations.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func discoveryError(cause error, detail error) *Error {
	return &Error{Kind: KindDiscovery, Err: fmt.Errorf("%w: %w", cause, detail)}
}
