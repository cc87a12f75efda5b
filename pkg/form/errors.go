package form

import "errors"

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrSubmitted      = errors.New("form already submitted")
	ErrInvalidVariant = errors.New("invalid form variant")
	ErrUnknownVariant = errors.New("unknown form variant")
)
