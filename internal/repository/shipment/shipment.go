package shipment

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/internal/repository"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create сохраняет отправку вместе с начальными событиями и тегами, вызывается внутри транзакции.
func (r *Repository) Create(ctx context.Context, shipment *entities.Shipment) error {
	query := `INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.querier.Exec(
		ctx,
		query,
		shipment.ID,
		shipment.Content,
		shipment.Weight,
		shipment.Destination,
		shipment.ClientContactEmail,
		shipment.ClientContactPhone,
		shipment.EstimatedDelivery,
		shipment.Status.String(),
		shipment.PartnerID,
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)
	if err != nil {
		return repository.Translate("shipment repository create", err)
	}

	for _, event := range shipment.Timeline {
		if err := r.insertEvent(ctx, event); err != nil {
			return err
		}
	}
	for _, tag := range shipment.Tags {
		if _, err := r.AddTag(ctx, shipment.ID, tag); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Shipment, error) {
	query := `SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE id = $1`

	var shipmentDB ShipmentDB
	err := r.querier.QueryRow(ctx, query, id).Scan(shipmentDB.fields()...)
	if err != nil {
		return nil, repository.Translate("shipment repository getbyid", err)
	}

	shipments, err := r.withDetails(ctx, []ShipmentDB{shipmentDB})
	if err != nil {
		return nil, err
	}
	return &shipments[0], nil
}

// AppendEvent добавляет событие в хронологию и переносит его статус в отправку.
func (r *Repository) AppendEvent(ctx context.Context, event entities.ShipmentEvent) error {
	query := `UPDATE shipments
		SET status = $2, updated_at = $3
		WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, event.ShipmentID, event.Status.String(), event.CreatedAt)
	if err != nil {
		return repository.Translate("shipment repository append event", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return r.insertEvent(ctx, event)
}

func (r *Repository) SetEstimatedDelivery(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE shipments SET estimated_delivery = $2 WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id, at)
	if err != nil {
		return repository.Translate("shipment repository set estimated delivery", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AssignPartner закрепляет партнёра только за ожидающей назначения отправкой.
func (r *Repository) AssignPartner(ctx context.Context, shipmentID, partnerID uuid.UUID) error {
	query := `UPDATE shipments
		SET partner_id = $2
		WHERE id = $1 AND status = $3 AND partner_id IS NULL`

	result, err := r.querier.Exec(ctx, query, shipmentID, partnerID, entities.StatusPlaced.String())
	if err != nil {
		return repository.Translate("shipment repository assign partner", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	exists, err := r.exists(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ErrNotFound
	}
	return apperr.ErrConflict
}

func (r *Repository) ListPending(ctx context.Context, pending entities.PendingQuery) ([]entities.Shipment, error) {
	builder := qb.
		Select(shipmentColumns).
		From("shipments").
		Where(sq.Eq{
			"status":     entities.StatusPlaced.String(),
			"partner_id": nil,
		})

	if len(pending.ZipCodes) > 0 {
		builder = builder.Where(sq.Eq{"destination": pending.ZipCodes})
	}
	if pending.After != nil {
		builder = builder.Where(sq.Expr("(created_at, id) > (?, ?)", pending.After.CreatedAt, pending.After.ID))
	}

	builder = builder.OrderBy("created_at", "id")
	if pending.Limit > 0 {
		builder = builder.Limit(uint64(pending.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository list pending error: %w", err)
	}

	shipmentsDB, err := r.scanShipments(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.withDetails(ctx, shipmentsDB)
}

func (r *Repository) List(ctx context.Context, filter entities.ShipmentFilter) (*entities.ShipmentPage, error) {
	page := filter.Page.Normalize()

	conditions := sq.And{}
	if filter.PartnerID != nil {
		// uuid.UUID это массив, sq.Eq развернул бы его в IN
		conditions = append(conditions, sq.Expr("partner_id = ?", *filter.PartnerID))
	}
	if filter.Tag != nil {
		conditions = append(conditions, sq.Expr(
			"EXISTS (SELECT 1 FROM shipment_tags t WHERE t.shipment_id = shipments.id AND t.name = ?)",
			filter.Tag.String(),
		))
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("shipments").Where(conditions).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository list error: %w", err)
	}

	var total int
	if err := r.querier.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, repository.Translate("shipment repository list", err)
	}

	direction := "ASC"
	if page.Order == entities.SortDesc {
		direction = "DESC"
	}

	query, args, err := qb.
		Select(shipmentColumns).
		From("shipments").
		Where(conditions).
		OrderBy("created_at "+direction, "id "+direction).
		Limit(uint64(page.PageSize)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected shipment repository list error: %w", err)
	}

	shipmentsDB, err := r.scanShipments(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	shipments, err := r.withDetails(ctx, shipmentsDB)
	if err != nil {
		return nil, err
	}

	return entities.NewShipmentPage(shipments, page, total), nil
}

func (r *Repository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shipments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.Translate("shipment repository exists", err)
	}
	return exists, nil
}

func (r *Repository) insertEvent(ctx context.Context, event entities.ShipmentEvent) error {
	query := `INSERT INTO shipment_events (id, shipment_id, status, location, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.querier.Exec(
		ctx,
		query,
		event.ID,
		event.ShipmentID,
		event.Status.String(),
		event.Location,
		event.Description,
		event.CreatedAt,
	)
	if err != nil {
		return repository.Translate("shipment repository insert event", err)
	}
	return nil
}

func (r *Repository) scanShipments(ctx context.Context, query string, args ...any) ([]ShipmentDB, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.Translate("shipment repository query", err)
	}
	defer rows.Close()

	shipmentsDB := make([]ShipmentDB, 0, 16)
	for rows.Next() {
		var shipmentDB ShipmentDB
		if err := rows.Scan(shipmentDB.fields()...); err != nil {
			return nil, fmt.Errorf("unexpected shipment repository scan error: %w", err)
		}
		shipmentsDB = append(shipmentsDB, shipmentDB)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Translate("shipment repository query", err)
	}
	return shipmentsDB, nil
}

// withDetails догружает хронологию и теги одним запросом на таблицу.
func (r *Repository) withDetails(ctx context.Context, shipmentsDB []ShipmentDB) ([]entities.Shipment, error) {
	if len(shipmentsDB) == 0 {
		return []entities.Shipment{}, nil
	}

	ids := make([]uuid.UUID, len(shipmentsDB))
	for i, s := range shipmentsDB {
		ids[i] = s.ID
	}

	events, err := r.eventsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	tags, err := r.tagsOf(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Shipment, len(shipmentsDB))
	for i := range shipmentsDB {
		id := shipmentsDB[i].ID
		result[i] = *ToDomain(&shipmentsDB[i], events[id], tags[id])
	}
	return result, nil
}

func (r *Repository) eventsOf(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]EventDB, error) {
	query := `SELECT id, shipment_id, status, location, description, created_at
		FROM shipment_events
		WHERE shipment_id = ANY($1)
		ORDER BY shipment_id, seq`

	rows, err := r.querier.Query(ctx, query, ids)
	if err != nil {
		return nil, repository.Translate("shipment repository events", err)
	}
	defer rows.Close()

	events := make(map[uuid.UUID][]EventDB, len(ids))
	for rows.Next() {
		var e EventDB
		if err := rows.Scan(&e.ID, &e.ShipmentID, &e.Status, &e.Location, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected shipment repository events error: %w", err)
		}
		events[e.ShipmentID] = append(events[e.ShipmentID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Translate("shipment repository events", err)
	}
	return events, nil
}

func (r *Repository) tagsOf(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]TagDB, error) {
	query := `SELECT id, shipment_id, name, instruction, created_at
		FROM shipment_tags
		WHERE shipment_id = ANY($1)
		ORDER BY shipment_id, seq`

	rows, err := r.querier.Query(ctx, query, ids)
	if err != nil {
		return nil, repository.Translate("shipment repository tags", err)
	}
	defer rows.Close()

	tags := make(map[uuid.UUID][]TagDB, len(ids))
	for rows.Next() {
		var t TagDB
		if err := rows.Scan(&t.ID, &t.ShipmentID, &t.Name, &t.Instruction, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("unexpected shipment repository tags error: %w", err)
		}
		tags[t.ShipmentID] = append(tags[t.ShipmentID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Translate("shipment repository tags", err)
	}
	return tags, nil
}
