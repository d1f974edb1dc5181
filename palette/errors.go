package palette

import (
	"errors"
	"strconv"
)

// Registry failure classes; match with errors.Is
var (
	ErrNotFound         = errors.New("palette: name not registered")
	ErrDuplicateName    = errors.New("palette: name already registered")
	ErrCapacityExceeded = errors.New("palette: capacity exceeded")
	ErrUnsupported      = errors.New("palette: terminal cannot redefine colors")
	ErrOutOfRange       = errors.New("palette: component outside [0,1000]")
)

// Error identifies the operation, name and limit behind a registry failure
type Error struct {
	Op    string // registerColor, lookupColor, registerPair, lookupPair, activate
	Name  string
	Limit int // capacity or intensity bound; 0 when not applicable
	Err   error
}

func (e *Error) Error() string {
	s := e.Op + " " + strconv.Quote(e.Name) + ": " + e.Err.Error()
	if e.Limit > 0 {
		s += " (limit " + strconv.Itoa(e.Limit) + ")"
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(op, name string, limit int, err error) *Error {
	return &Error{Op: op, Name: name, Limit: limit, Err: err}
}
