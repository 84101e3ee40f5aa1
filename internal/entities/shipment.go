package entities

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentStatus string

const (
	StatusPlaced         ShipmentStatus = "placed"
	StatusProcessing     ShipmentStatus = "processing"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusReturned       ShipmentStatus = "returned"
	StatusCancelled      ShipmentStatus = "cancelled"
)

// допустимые переходы, терминальные статусы исходящих рёбер не имеют
var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	StatusPlaced:         {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusInTransit, StatusCancelled},
	StatusInTransit:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered, StatusReturned},
	StatusDelivered:      nil,
	StatusReturned:       nil,
	StatusCancelled:      nil,
}

func (s ShipmentStatus) String() string {
	return string(s)
}

func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentTransitions[s]
	return ok
}

func (s ShipmentStatus) IsTerminal() bool {
	next, ok := shipmentTransitions[s]
	return ok && len(next) == 0
}

func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	for _, allowed := range shipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ShipmentStatus) IsCancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// NextStatuses возвращает копию списка разрешённых переходов.
func (s ShipmentStatus) NextStatuses() []ShipmentStatus {
	next := shipmentTransitions[s]
	out := make([]ShipmentStatus, len(next))
	copy(out, next)
	return out
}

func ShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPlaced,
		StatusProcessing,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusReturned,
		StatusCancelled,
	}
}

type ShipmentEvent struct {
	ID          uuid.UUID
	ShipmentID  uuid.UUID
	Status      ShipmentStatus
	Location    *string
	Description *string
	CreatedAt   time.Time
}

type Shipment struct {
	ID                 uuid.UUID
	Content            string
	Weight             float64
	Destination        string
	ClientContactEmail string
	ClientContactPhone *string
	EstimatedDelivery  time.Time
	// Status всегда равен статусу последнего события Timeline
	Status    ShipmentStatus
	PartnerID *uuid.UUID
	Tags      []Tag
	Timeline  []ShipmentEvent
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Shipment) LatestEvent() *ShipmentEvent {
	if len(s.Timeline) == 0 {
		return nil
	}
	return &s.Timeline[len(s.Timeline)-1]
}

func (s *Shipment) HasTag(name TagName) bool {
	for _, tag := range s.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

func (s *Shipment) IsPending() bool {
	return s.Status == StatusPlaced && s.PartnerID == nil
}

type ShipmentCreate struct {
	Content            *string
	Weight             *float64
	Destination        *string
	ClientContactEmail *string
	ClientContactPhone *string
	Tags               []TagName
}

type ShipmentUpdate struct {
	ID                uuid.UUID
	Status            *ShipmentStatus
	Location          *string
	Description       *string
	EstimatedDelivery *time.Time
	VerificationCode  *string
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
	Order    SortOrder
}

// Normalize подставляет значения по умолчанию для пустых полей.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Order != SortAsc {
		p.Order = SortDesc
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ShipmentFilter struct {
	PartnerID *uuid.UUID
	Tag       *TagName
	Page      PageRequest
}

type ShipmentPage struct {
	Shipments  []Shipment
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

func NewShipmentPage(shipments []Shipment, page PageRequest, total int) *ShipmentPage {
	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (total + page.PageSize - 1) / page.PageSize
	}
	if shipments == nil {
		shipments = []Shipment{}
	}
	return &ShipmentPage{
		Shipments:  shipments,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PendingQuery выбирает ожидающие назначения отправки в порядке создания.
// After задаёт позицию, с которой продолжается обход.
type PendingQuery struct {
	ZipCodes []string
	After    *PendingCursor
	Limit    int
}

type PendingCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func CursorOf(s Shipment) *PendingCursor {
	return &PendingCursor{CreatedAt: s.CreatedAt, ID: s.ID}
}
