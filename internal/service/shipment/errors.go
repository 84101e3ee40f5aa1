package shipment

import "errors"

var (
	ErrMissingRequiredFields    = errors.New("missing required fields")
	ErrInvalidShipmentID        = errors.New("invalid shipment id")
	ErrInvalidContent           = errors.New("invalid content")
	ErrInvalidWeight            = errors.New("invalid weight")
	ErrInvalidDestination       = errors.New("invalid destination zip code")
	ErrInvalidEmail             = errors.New("invalid contact email")
	ErrInvalidPhone             = errors.New("invalid contact phone")
	ErrInvalidTag               = errors.New("invalid tag")
	ErrInvalidStatus            = errors.New("invalid status")
	ErrInvalidLocation          = errors.New("invalid location")
	ErrInvalidDescription       = errors.New("invalid description")
	ErrInvalidEstimatedDelivery = errors.New("invalid estimated delivery")
	ErrNoChanges                = errors.New("no changes requested")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrInvalidComment           = errors.New("invalid comment")
	ErrInvalidPartnerID         = errors.New("invalid partner id")
)
