package services

import "errors"

var (
	// ErrNotFound: the referenced user/meal/day record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden: the record exists but belongs to another user.
	ErrForbidden = errors.New("record owned by another user")
	// ErrDataIntegrity: malformed catalog data (e.g. a non-numeric serving
	// weight) or a missing food during confirmation; fatal for the operation.
	ErrDataIntegrity = errors.New("data integrity error")
	// ErrAlreadyConfirmed: the meal already has confirmed food links.
	ErrAlreadyConfirmed = errors.New("meal already confirmed")
	// ErrClassifyIncomplete: every cascade branch failed; retryable.
	ErrClassifyIncomplete = errors.New("classification incomplete")
)
