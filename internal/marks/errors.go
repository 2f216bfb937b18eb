package marks

import "errors"

// Domain errors. All are local precondition violations: they are surfaced to
// the caller immediately and leave stored marks untouched.
var (
	ErrDuplicateID  = errors.New("mark id already exists")
	ErrNotFound     = errors.New("mark not found")
	ErrInvalidState = errors.New("draft in wrong state")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrNoPosition   = errors.New("no reading position observed yet")
)
