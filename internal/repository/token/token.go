package token

import (
	"context"
	"time"

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

// ReplaceVerificationCode гасит прежний активный код отправки и сохраняет новый.
func (r *Repository) ReplaceVerificationCode(ctx context.Context, code entities.VerificationCode) error {
	_, err := r.querier.Exec(ctx, `UPDATE verification_codes
		SET consumed_at = $2
		WHERE shipment_id = $1 AND consumed_at IS NULL`, code.ShipmentID, code.IssuedAt)
	if err != nil {
		return repository.Translate("token repository supersede code", err)
	}

	_, err = r.querier.Exec(ctx, `INSERT INTO verification_codes (id, shipment_id, code, issued_at, consumed_at)
		VALUES ($1, $2, $3, $4, $5)`, code.ID, code.ShipmentID, code.Code, code.IssuedAt, code.ConsumedAt)
	if err != nil {
		return repository.Translate("token repository insert code", err)
	}
	return nil
}

func (r *Repository) GetActiveVerificationCode(ctx context.Context, shipmentID uuid.UUID) (*entities.VerificationCode, error) {
	var code entities.VerificationCode
	err := r.querier.QueryRow(ctx, `SELECT id, shipment_id, code, issued_at, consumed_at
		FROM verification_codes
		WHERE shipment_id = $1 AND consumed_at IS NULL`, shipmentID).
		Scan(&code.ID, &code.ShipmentID, &code.Code, &code.IssuedAt, &code.ConsumedAt)
	if err != nil {
		return nil, repository.Translate("token repository get active code", err)
	}
	return &code, nil
}

func (r *Repository) ConsumeVerificationCode(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.querier.Exec(ctx, `UPDATE verification_codes
		SET consumed_at = $2
		WHERE id = $1 AND consumed_at IS NULL`, id, at)
	if err != nil {
		return repository.Translate("token repository consume code", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM verification_codes WHERE id = $1)`, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.ErrNotFound
	}
	return apperr.ErrMissingOrInvalidEvidence
}

func (r *Repository) CreateReviewToken(ctx context.Context, token entities.ReviewToken) error {
	_, err := r.querier.Exec(ctx, `INSERT INTO review_tokens (token_hash, shipment_id, issued_at, expires_at, consumed_at)
		VALUES ($1, $2, $3, $4, $5)`, token.TokenHash, token.ShipmentID, token.IssuedAt, token.ExpiresAt, token.ConsumedAt)
	if err != nil {
		return repository.Translate("token repository create review token", err)
	}
	return nil
}

func (r *Repository) GetReviewToken(ctx context.Context, tokenHash string) (*entities.ReviewToken, error) {
	var token entities.ReviewToken
	err := r.querier.QueryRow(ctx, `SELECT token_hash, shipment_id, issued_at, expires_at, consumed_at
		FROM review_tokens
		WHERE token_hash = $1`, tokenHash).
		Scan(&token.TokenHash, &token.ShipmentID, &token.IssuedAt, &token.ExpiresAt, &token.ConsumedAt)
	if err != nil {
		return nil, repository.Translate("token repository get review token", err)
	}
	return &token, nil
}

func (r *Repository) ConsumeReviewToken(ctx context.Context, tokenHash string, at time.Time) error {
	result, err := r.querier.Exec(ctx, `UPDATE review_tokens
		SET consumed_at = $2
		WHERE token_hash = $1 AND consumed_at IS NULL`, tokenHash, at)
	if err != nil {
		return repository.Translate("token repository consume review token", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	found, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM review_tokens WHERE token_hash = $1)`, tokenHash)
	if err != nil {
		return err
	}
	if !found {
		return apperr.ErrNotFound
	}
	return apperr.ErrTokenExpiredOrConsumed
}

// DeleteExpired удаляет истёкшие токены отзыва и давно погашенные коды.
func (r *Repository) DeleteExpired(ctx context.Context, expiredBefore, consumedBefore time.Time) (int64, error) {
	tokens, err := r.querier.Exec(ctx, `DELETE FROM review_tokens WHERE expires_at <= $1`, expiredBefore)
	if err != nil {
		return 0, repository.Translate("token repository delete expired tokens", err)
	}

	codes, err := r.querier.Exec(ctx, `DELETE FROM verification_codes
		WHERE consumed_at IS NOT NULL AND consumed_at <= $1`, consumedBefore)
	if err != nil {
		return 0, repository.Translate("token repository delete consumed codes", err)
	}

	return tokens.RowsAffected() + codes.RowsAffected(), nil
}

func (r *Repository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, repository.Translate("token repository exists", err)
	}
	return found, nil
}
