package services

import "errors"

// Service errors. Handlers map these onto HTTP statuses; everything else is
// treated as an internal error.
var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrForbidden covers policy denials, including writes to fields outside
	// the actor's whitelist.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers unresolvable ids and rows outside the actor's
	// visible scope. Out-of-scope rows deliberately look identical to missing
	// ones so the response does not leak their existence.
	ErrNotFound = errors.New("not found")

	// ErrInvariant covers cross-entity rule violations, such as assigning a
	// bug to a non-developer.
	ErrInvariant = errors.New("invariant violation")
)
