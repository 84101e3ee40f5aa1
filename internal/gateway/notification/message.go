package notification

import (
	"time"

	"tracker/internal/entities"
)

// message уходит в топик уведомлений, почтовый сервис читает его по kind.
type message struct {
	Kind        string     `json:"kind"`
	ShipmentID  string     `json:"shipment_id"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Code        string     `json:"code,omitempty"`
	ReviewToken string     `json:"review_token,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toMessage(n entities.Notification) message {
	return message{
		Kind:        n.Kind.String(),
		ShipmentID:  n.ShipmentID.String(),
		Email:       n.Email,
		Phone:       n.Phone,
		Code:        n.Code,
		ReviewToken: n.ReviewToken,
		ExpiresAt:   n.ExpiresAt,
		CreatedAt:   n.CreatedAt,
	}
}
