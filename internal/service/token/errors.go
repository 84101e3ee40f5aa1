package token

import "errors"

var (
	ErrInvalidShipmentID = errors.New("invalid shipment id")
	ErrEmptyCode         = errors.New("verification code is empty")
	ErrEmptyToken        = errors.New("review token is empty")
)
