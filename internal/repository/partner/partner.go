package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/internal/repository"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, partner *entities.DeliveryPartner) error {
	query := `INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.querier.Exec(
		ctx,
		query,
		partner.ID,
		partner.Name,
		partner.Email,
		zipCodesOrEmpty(partner.ZipCodes),
		partner.MaxCapacity,
		partner.CurrentLoad,
		partner.Version,
		partner.CreatedAt,
		partner.UpdatedAt,
	)
	if err != nil {
		return repository.Translate("partner repository create", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error) {
	query := `SELECT ` + partnerColumns + `
		FROM partners
		WHERE id = $1`

	var partnerDB PartnerDB
	if err := r.querier.QueryRow(ctx, query, id).Scan(partnerDB.fields()...); err != nil {
		return nil, repository.Translate("partner repository getbyid", err)
	}
	return ToDomain(&partnerDB), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.DeliveryPartner, error) {
	query := `SELECT ` + partnerColumns + `
		FROM partners
		ORDER BY created_at, id`

	return r.list(ctx, "getall", query)
}

// ListEligible возвращает партнёров зоны со свободной ёмкостью, наименее загруженные первыми.
func (r *Repository) ListEligible(ctx context.Context, zip string) ([]entities.DeliveryPartner, error) {
	query := `SELECT ` + partnerColumns + `
		FROM partners
		WHERE $1 = ANY (zip_codes) AND current_load < max_capacity
		ORDER BY current_load, created_at, id`

	return r.list(ctx, "list eligible", query, zip)
}

// CompareAndSwap записывает partner, только если сохранённая версия равна expectedVersion.
func (r *Repository) CompareAndSwap(ctx context.Context, partner entities.DeliveryPartner, expectedVersion int64) (*entities.DeliveryPartner, error) {
	query := `UPDATE partners
		SET name = $3,
			email = $4,
			zip_codes = $5,
			max_capacity = $6,
			current_load = $7,
			updated_at = $8,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING ` + partnerColumns

	var partnerDB PartnerDB
	err := r.querier.QueryRow(
		ctx,
		query,
		partner.ID,
		expectedVersion,
		partner.Name,
		partner.Email,
		zipCodesOrEmpty(partner.ZipCodes),
		partner.MaxCapacity,
		partner.CurrentLoad,
		partner.UpdatedAt,
	).Scan(partnerDB.fields()...)
	if err == nil {
		return ToDomain(&partnerDB), nil
	}

	err = repository.Translate("partner repository compare and swap", err)
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	// ноль строк: либо партнёра нет, либо версия уже ушла вперёд
	var exists bool
	err = r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM partners WHERE id = $1)`, partner.ID).Scan(&exists)
	if err != nil {
		return nil, repository.Translate("partner repository compare and swap", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	return nil, apperr.ErrConcurrentModification
}

func (r *Repository) list(ctx context.Context, op, query string, args ...any) ([]entities.DeliveryPartner, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.Translate("partner repository "+op, err)
	}
	defer rows.Close()

	partnersDB := make([]PartnerDB, 0, 8)
	for rows.Next() {
		var partnerDB PartnerDB
		if err := rows.Scan(partnerDB.fields()...); err != nil {
			return nil, fmt.Errorf("unexpected partner repository %s error: %w", op, err)
		}
		partnersDB = append(partnersDB, partnerDB)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Translate("partner repository "+op, err)
	}

	return ToDomainList(partnersDB), nil
}
