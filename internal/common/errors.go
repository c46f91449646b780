// Package common defines shared constants and sentinel errors used across the
// storage, service and presentation layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// User record errors.
	ErrDuplicateUser      = errors.New("user with this email or nickname already exists")
	ErrInvalidCredentials = errors.New("invalid email/password")
	ErrValidation         = errors.New("validation error")

	// Collection errors.
	ErrPartyFull       = errors.New("party is full")
	ErrAlreadyInParty  = errors.New("pokemon is already in the party")
	ErrAlreadyFavorite = errors.New("pokemon is already a favorite")

	// Catalog collaborator errors (unreachable host or non-2xx response).
	ErrNetworkFailure = errors.New("network failure")
)
