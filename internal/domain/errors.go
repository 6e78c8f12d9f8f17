package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate entry")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")
	ErrAccountsOpen      = errors.New("customer still owns accounts")
	ErrUnknownKind       = errors.New("unknown account kind")
	ErrKindMismatch      = errors.New("parameters do not match account kind")
	ErrInvalidRate       = errors.New("interest rate cannot be negative")
	ErrInvalidLimit      = errors.New("overdraft limit cannot be negative")
)
