//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tag_test
package tag

import (
	"context"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

type Repository interface {
	AddTag(ctx context.Context, shipmentID uuid.UUID, tag entities.Tag) (*entities.Tag, error)
	RemoveTag(ctx context.Context, shipmentID uuid.UUID, name entities.TagName) (bool, error)
}
