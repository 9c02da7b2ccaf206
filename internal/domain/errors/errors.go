package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoaded          = errors.New("dashboard data not loaded")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrEmptySelection     = errors.New("no orders selected")
)
