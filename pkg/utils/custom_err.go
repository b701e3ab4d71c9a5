package utils

import "errors"

var (
	ErrMalformedPlace  = errors.New("malformed place record")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrUpstream        = errors.New("places api error")
	ErrInvalidLocation = errors.New("invalid location parameter")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrDatabaseError   = errors.New("database error")
)
