package arena

import "errors"

var (
	ErrUnknownCycle  = errors.New("unknown cycle")
	ErrInvalidConfig = errors.New("invalid arena configuration")
	ErrDuplicateName = errors.New("duplicate cycle name")
)
