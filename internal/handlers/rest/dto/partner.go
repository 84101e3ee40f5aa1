package dto

import (
	"time"

	"github.com/google/uuid"
)

type PartnerCreate struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	ZipCodes    []string `json:"zip_codes"`
	MaxCapacity *int     `json:"max_capacity"`
}

// PartnerUpdate меняет только переданные поля.
type PartnerUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	ZipCodes    *[]string `json:"zip_codes,omitempty"`
	MaxCapacity *int      `json:"max_capacity,omitempty"`
}

type Partner struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ZipCodes    []string  `json:"zip_codes"`
	MaxCapacity int       `json:"max_capacity"`
	CurrentLoad int       `json:"current_load"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
