package cycle

import "errors"

var (
	ErrInvalidTurn   = errors.New("invalid turn direction")
	ErrInvalidConfig = errors.New("invalid cycle configuration")
)
