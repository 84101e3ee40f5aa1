package entities

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type DeliveryPartner struct {
	ID          uuid.UUID
	Name        string
	Email       string
	ZipCodes    []string
	MaxCapacity int
	CurrentLoad int
	// Version растёт при каждой записи, используется для compare-and-swap
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *DeliveryPartner) HasCapacity() bool {
	return p.CurrentLoad < p.MaxCapacity
}

func (p *DeliveryPartner) Serves(zip string) bool {
	return slices.Contains(p.ZipCodes, zip)
}

type PartnerModify struct {
	ID          *uuid.UUID
	Name        *string
	Email       *string
	ZipCodes    *[]string
	MaxCapacity *int
}

type CapacityEventKind string

const (
	CapacityCoverageAdded CapacityEventKind = "coverage_added"
	CapacityRaised        CapacityEventKind = "capacity_raised"
	CapacityLoadFreed     CapacityEventKind = "load_freed"
)

func (k CapacityEventKind) String() string {
	return string(k)
}

// CapacityEvent сигнализирует планировщику, что для зон ZipCodes могла появиться ёмкость.
type CapacityEvent struct {
	Kind       CapacityEventKind
	PartnerID  uuid.UUID
	ZipCodes   []string
	OccurredAt time.Time
}
