package partner

import (
	"time"

	"github.com/google/uuid"
)

type PartnerDB struct {
	ID          uuid.UUID
	Name        string
	Email       string
	ZipCodes    []string
	MaxCapacity int
	CurrentLoad int
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const partnerColumns = `id, name, email, zip_codes, max_capacity, current_load, version, created_at, updated_at`

func (p *PartnerDB) fields() []any {
	return []any{
		&p.ID,
		&p.Name,
		&p.Email,
		&p.ZipCodes,
		&p.MaxCapacity,
		&p.CurrentLoad,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
