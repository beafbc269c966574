package interfaces

import "errors"

// ErrNotFound is returned by every repository when a lookup matches no
// document. Services translate it into their own taxonomy.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique index,
// such as two registrations racing on the same email.
var ErrDuplicate = errors.New("duplicate record")
