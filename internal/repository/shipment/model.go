package shipment

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentDB struct {
	ID                 uuid.UUID
	Content            string
	Weight             float64
	Destination        string
	ClientContactEmail string
	ClientContactPhone *string
	EstimatedDelivery  time.Time
	Status             string
	PartnerID          *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type EventDB struct {
	ID          uuid.UUID
	ShipmentID  uuid.UUID
	Status      string
	Location    *string
	Description *string
	CreatedAt   time.Time
}

type TagDB struct {
	ID          uuid.UUID
	ShipmentID  uuid.UUID
	Name        string
	Instruction string
	CreatedAt   time.Time
}

const shipmentColumns = `id, content, weight, destination, client_contact_email, client_contact_phone,
	estimated_delivery, status, partner_id, created_at, updated_at`

func (s *ShipmentDB) fields() []any {
	return []any{
		&s.ID,
		&s.Content,
		&s.Weight,
		&s.Destination,
		&s.ClientContactEmail,
		&s.ClientContactPhone,
		&s.EstimatedDelivery,
		&s.Status,
		&s.PartnerID,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}
