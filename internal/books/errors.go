package books

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch
type Kind int

const (
	// KindNetwork - the request never produced a response (DNS, refused, timeout)
	KindNetwork Kind = iota
	// KindStatus - the API answered with something other than 200 OK
	KindStatus
	// KindParse - the body was not JSON or not shaped like a book
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error describes a failed fetch against the book API
type Error struct {
	Kind       Kind
	Target     string // "books" or "book 3"
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("failed to get %s: %s", e.Target, e.Status)
	case KindParse:
		return fmt.Sprintf("failed to parse %s: %v", e.Target, e.Err)
	default:
		return fmt.Sprintf("failed to get %s: %v", e.Target, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a status error carrying code
func IsStatus(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindStatus && e.StatusCode == code
}

// KindOf returns the kind of a fetch error and false for anything else
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
