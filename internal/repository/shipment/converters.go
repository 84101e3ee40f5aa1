package shipment

import (
	"tracker/internal/entities"
)

func ToDomain(s *ShipmentDB, events []EventDB, tags []TagDB) *entities.Shipment {
	if s == nil {
		return nil
	}

	shipment := &entities.Shipment{
		ID:                 s.ID,
		Content:            s.Content,
		Weight:             s.Weight,
		Destination:        s.Destination,
		ClientContactEmail: s.ClientContactEmail,
		ClientContactPhone: s.ClientContactPhone,
		EstimatedDelivery:  s.EstimatedDelivery,
		Status:             entities.ShipmentStatus(s.Status),
		PartnerID:          s.PartnerID,
		Tags:               make([]entities.Tag, 0, len(tags)),
		Timeline:           make([]entities.ShipmentEvent, 0, len(events)),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	for _, e := range events {
		shipment.Timeline = append(shipment.Timeline, eventToDomain(e))
	}
	for _, t := range tags {
		shipment.Tags = append(shipment.Tags, tagToDomain(t))
	}
	return shipment
}

func eventToDomain(e EventDB) entities.ShipmentEvent {
	return entities.ShipmentEvent{
		ID:          e.ID,
		ShipmentID:  e.ShipmentID,
		Status:      entities.ShipmentStatus(e.Status),
		Location:    e.Location,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func tagToDomain(t TagDB) entities.Tag {
	return entities.Tag{
		ID:          t.ID,
		Name:        entities.TagName(t.Name),
		Instruction: t.Instruction,
		CreatedAt:   t.CreatedAt,
	}
}
