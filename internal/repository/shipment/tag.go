package shipment

import (
	"context"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/internal/repository"
)

// AddTag возвращает уже существующий тег с тем же именем вместо дубля.
func (r *Repository) AddTag(ctx context.Context, shipmentID uuid.UUID, tag entities.Tag) (*entities.Tag, error) {
	query := `INSERT INTO shipment_tags (id, shipment_id, name, instruction, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shipment_id, name) DO NOTHING`

	result, err := r.querier.Exec(ctx, query, tag.ID, shipmentID, tag.Name.String(), tag.Instruction, tag.CreatedAt)
	if err != nil {
		return nil, repository.Translate("shipment repository add tag", err)
	}
	if result.RowsAffected() > 0 {
		added := tag
		return &added, nil
	}

	var tagDB TagDB
	err = r.querier.QueryRow(ctx, `SELECT id, shipment_id, name, instruction, created_at
		FROM shipment_tags
		WHERE shipment_id = $1 AND name = $2`, shipmentID, tag.Name.String()).
		Scan(&tagDB.ID, &tagDB.ShipmentID, &tagDB.Name, &tagDB.Instruction, &tagDB.CreatedAt)
	if err != nil {
		return nil, repository.Translate("shipment repository add tag", err)
	}

	existing := tagToDomain(tagDB)
	return &existing, nil
}

func (r *Repository) RemoveTag(ctx context.Context, shipmentID uuid.UUID, name entities.TagName) (bool, error) {
	result, err := r.querier.Exec(ctx, `DELETE FROM shipment_tags WHERE shipment_id = $1 AND name = $2`,
		shipmentID, name.String())
	if err != nil {
		return false, repository.Translate("shipment repository remove tag", err)
	}
	if result.RowsAffected() > 0 {
		return true, nil
	}

	exists, err := r.exists(ctx, shipmentID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperr.ErrNotFound
	}
	return false, nil
}

func (r *Repository) CreateReview(ctx context.Context, review entities.Review) error {
	query := `INSERT INTO reviews (id, shipment_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.querier.Exec(ctx, query, review.ID, review.ShipmentID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return repository.Translate("shipment repository create review", err)
	}
	return nil
}
