package tag

import "errors"

var (
	ErrUnknownTag        = errors.New("unknown tag name")
	ErrInvalidShipmentID = errors.New("invalid shipment id")
)
