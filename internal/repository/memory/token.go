package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
)

type TokenRepository struct {
	store *Store
}

func NewTokenRepository(store *Store) *TokenRepository {
	return &TokenRepository{store: store}
}

// ReplaceVerificationCode гасит прежний активный код отправки и сохраняет новый.
func (r *TokenRepository) ReplaceVerificationCode(ctx context.Context, code entities.VerificationCode) error {
	j, release := r.store.acquire(ctx)
	defer release()

	for _, existing := range r.store.codes {
		if existing.ShipmentID != code.ShipmentID || existing.IsConsumed() {
			continue
		}
		supersededAt := code.IssuedAt
		existing.ConsumedAt = &supersededAt
		j.record(func() { existing.ConsumedAt = nil })
	}

	r.store.codes[code.ID] = cloneCode(&code)
	j.record(func() { delete(r.store.codes, code.ID) })
	return nil
}

func (r *TokenRepository) GetActiveVerificationCode(ctx context.Context, shipmentID uuid.UUID) (*entities.VerificationCode, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	for _, code := range r.store.codes {
		if code.ShipmentID == shipmentID && !code.IsConsumed() {
			return cloneCode(code), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *TokenRepository) ConsumeVerificationCode(ctx context.Context, id uuid.UUID, at time.Time) error {
	j, release := r.store.acquire(ctx)
	defer release()

	code, ok := r.store.codes[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if code.IsConsumed() {
		return apperr.ErrMissingOrInvalidEvidence
	}

	consumedAt := at
	code.ConsumedAt = &consumedAt
	j.record(func() { code.ConsumedAt = nil })
	return nil
}

func (r *TokenRepository) CreateReviewToken(ctx context.Context, token entities.ReviewToken) error {
	j, release := r.store.acquire(ctx)
	defer release()

	if _, ok := r.store.reviewTokens[token.TokenHash]; ok {
		return apperr.ErrConflict
	}

	r.store.reviewTokens[token.TokenHash] = cloneReviewToken(&token)
	j.record(func() { delete(r.store.reviewTokens, token.TokenHash) })
	return nil
}

func (r *TokenRepository) GetReviewToken(ctx context.Context, tokenHash string) (*entities.ReviewToken, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	token, ok := r.store.reviewTokens[tokenHash]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return cloneReviewToken(token), nil
}

func (r *TokenRepository) ConsumeReviewToken(ctx context.Context, tokenHash string, at time.Time) error {
	j, release := r.store.acquire(ctx)
	defer release()

	token, ok := r.store.reviewTokens[tokenHash]
	if !ok {
		return apperr.ErrNotFound
	}
	if token.IsConsumed() {
		return apperr.ErrTokenExpiredOrConsumed
	}

	consumedAt := at
	token.ConsumedAt = &consumedAt
	j.record(func() { token.ConsumedAt = nil })
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, expiredBefore, consumedBefore time.Time) (int64, error) {
	j, release := r.store.acquire(ctx)
	defer release()

	var deleted int64
	for hash, token := range r.store.reviewTokens {
		if token.ExpiresAt.After(expiredBefore) {
			continue
		}
		delete(r.store.reviewTokens, hash)
		j.record(func() { r.store.reviewTokens[hash] = token })
		deleted++
	}

	for id, code := range r.store.codes {
		if code.ConsumedAt == nil || code.ConsumedAt.After(consumedBefore) {
			continue
		}
		delete(r.store.codes, id)
		j.record(func() { r.store.codes[id] = code })
		deleted++
	}
	return deleted, nil
}
