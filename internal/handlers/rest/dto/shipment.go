package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentCreate struct {
	Content            *string  `json:"content"`
	Weight             *float64 `json:"weight"`
	Destination        *string  `json:"destination"`
	ClientContactEmail *string  `json:"client_contact_email"`
	ClientContactPhone *string  `json:"client_contact_phone,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

type ShipmentUpdate struct {
	Status            *string    `json:"status,omitempty"`
	Location          *string    `json:"location,omitempty"`
	Description       *string    `json:"description,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	VerificationCode  *string    `json:"verification_code,omitempty"`
}

type ShipmentEvent struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"created_at"`
}

type TagAdd struct {
	Name *string `json:"name"`
}

type Shipment struct {
	ID                 uuid.UUID       `json:"id"`
	Content            string          `json:"content"`
	Weight             float64         `json:"weight"`
	Destination        string          `json:"destination"`
	ClientContactEmail string          `json:"client_contact_email"`
	ClientContactPhone *string         `json:"client_contact_phone,omitempty"`
	Status             string          `json:"status"`
	PartnerID          *uuid.UUID      `json:"partner_id"`
	EstimatedDelivery  time.Time       `json:"estimated_delivery"`
	Tags               []Tag           `json:"tags"`
	Timeline           []ShipmentEvent `json:"timeline"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type ShipmentList struct {
	Shipments  []Shipment `json:"shipments"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}
