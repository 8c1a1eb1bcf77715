package domain

import "errors"

var (
	// ErrRequestNotFound is returned when no request matches the lookup
	ErrRequestNotFound = errors.New("ink request not found")
	// ErrIssuanceNotFound is returned when no issuance matches the lookup
	ErrIssuanceNotFound = errors.New("issuance not found")
	// ErrNotEligible is returned when the admin stage is attempted before
	// supervisor approval.
	ErrNotEligible = errors.New("request is not eligible for admin decision")
	// ErrStateConflict is returned when a decision targets a stage that has
	// already been decided.
	ErrStateConflict = errors.New("request is not in the required approval stage")
	// ErrInsufficientStock is returned when the lot cannot cover the
	// remainder after consuming the in-use ledger. The whole decision rolls
	// back, leaving the request untouched.
	ErrInsufficientStock = errors.New("insufficient stock to fulfill request")
	// ErrInvalidAction is returned for actions other than approve/reject
	ErrInvalidAction = errors.New("invalid action")
)
