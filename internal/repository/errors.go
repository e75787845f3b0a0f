// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow services to distinguish a
// missing row from a store failure: the former becomes a 404 envelope,
// the latter a 500.
package repository

import "errors"

// ErrComplaintNotFound is returned when no active complaint matches the
// given id, or when an update matches no row at all.
var ErrComplaintNotFound = errors.New("complaint not found")

// ErrEntityNotFound is returned when a public entity id does not exist.
var ErrEntityNotFound = errors.New("public entity not found")

// ErrUserNotFound is returned when no user has the given username.
var ErrUserNotFound = errors.New("user not found")
