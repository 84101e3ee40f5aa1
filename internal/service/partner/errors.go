package partner

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidPartnerID      = errors.New("invalid partner id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidZipCode        = errors.New("invalid zip code")
	ErrInvalidCapacity       = errors.New("invalid capacity")
)
