package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReviewSubmit struct {
	Token   *string `json:"token"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

type Review struct {
	ID         uuid.UUID `json:"id"`
	ShipmentID uuid.UUID `json:"shipment_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewForm отдаёт только то, что нужно показать на форме отзыва, без контактов получателя.
type ReviewForm struct {
	ShipmentID  uuid.UUID `json:"shipment_id"`
	Content     string    `json:"content"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type PingResponse struct {
	Message    string    `json:"message"`
	Service    string    `json:"service"`
	ServerTime time.Time `json:"server_time"`
}
