package errors

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("ticket is not enough")
	ErrAlreadyCompleted  = errors.New("order already completed")
	ErrOrderCancelled    = errors.New("order cancelled")
	ErrAlreadyExists     = errors.New("already exists")
	ErrPersistence       = errors.New("persistence failure")
	ErrForbidden         = errors.New("forbidden")
)
