package walls

import "errors"

var (
	ErrUnknownSegment = errors.New("unknown wall segment")
	ErrSegmentSealed  = errors.New("wall segment is sealed")
	ErrInvalidOptions = errors.New("invalid wall store options")
)
