package dto_test

import (
	"time"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

func newShipment() entities.Shipment {
	id := uuid.MustParse("0b8f3f5e-9a3c-4f0e-8d52-6a7c3c1e2d10")
	placedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	deliveredAt := placedAt.Add(48 * time.Hour)

	return entities.Shipment{
		ID:                 id,
		Content:            "books",
		Weight:             2.5,
		Destination:        "10115",
		ClientContactEmail: "client@example.com",
		Status:             entities.StatusDelivered,
		Timeline: []entities.ShipmentEvent{
			{ID: uuid.New(), ShipmentID: id, Status: entities.StatusPlaced, CreatedAt: placedAt},
			{ID: uuid.New(), ShipmentID: id, Status: entities.StatusDelivered, CreatedAt: deliveredAt},
		},
		CreatedAt: placedAt,
		UpdatedAt: deliveredAt,
	}
}
