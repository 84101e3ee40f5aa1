package memory

import (
	"slices"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

func cloneShipment(s *entities.Shipment) *entities.Shipment {
	if s == nil {
		return nil
	}
	out := *s
	out.ClientContactPhone = clonePtr(s.ClientContactPhone)
	out.PartnerID = clonePtr(s.PartnerID)
	out.Tags = slices.Clone(s.Tags)
	out.Timeline = make([]entities.ShipmentEvent, len(s.Timeline))
	for i, event := range s.Timeline {
		out.Timeline[i] = cloneEvent(event)
	}
	return &out
}

func cloneEvent(e entities.ShipmentEvent) entities.ShipmentEvent {
	e.Location = clonePtr(e.Location)
	e.Description = clonePtr(e.Description)
	return e
}

func clonePartner(p *entities.DeliveryPartner) *entities.DeliveryPartner {
	if p == nil {
		return nil
	}
	out := *p
	out.ZipCodes = slices.Clone(p.ZipCodes)
	if out.ZipCodes == nil {
		out.ZipCodes = []string{}
	}
	return &out
}

func cloneCode(c *entities.VerificationCode) *entities.VerificationCode {
	out := *c
	out.ConsumedAt = clonePtr(c.ConsumedAt)
	return &out
}

func cloneReviewToken(t *entities.ReviewToken) *entities.ReviewToken {
	out := *t
	out.Token = ""
	out.ConsumedAt = clonePtr(t.ConsumedAt)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
