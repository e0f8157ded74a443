package models

import "errors"

// Sentinel errors shared across the bank services. Callers classify
// failures with errors.Is and map them to HTTP statuses at the edge.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation, such as a duplicate IBAN.
	ErrConflict = errors.New("conflict")

	// ErrInsufficientFunds indicates the account balance cannot cover the
	// expense being applied or the income being reversed.
	ErrInsufficientFunds = errors.New("insufficient funds on the account")

	// ErrInvalidInput indicates a malformed or out-of-range request payload.
	ErrInvalidInput = errors.New("invalid input")
)
