package collide

import "errors"

var (
	// ErrInvalidInput reports degenerate or non-finite geometry and bad options.
	ErrInvalidInput = errors.New("collide: invalid input")

	// ErrInvariant reports an internal consistency failure, such as a convex
	// split that finds no partner vertex or a union walk that cannot continue.
	ErrInvariant = errors.New("collide: invariant violated")

	ErrNotRegistered     = errors.New("collide: form not registered")
	ErrAlreadyRegistered = errors.New("collide: form already registered")

	// ErrWrongKind is returned by mutators called on a form of another kind.
	ErrWrongKind = errors.New("collide: wrong form kind")
)
