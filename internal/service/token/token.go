package token

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

const DefaultReviewTokenTTL = 30 * 24 * time.Hour

// Issuer выпускает и гасит одноразовые коды подтверждения доставки и токены отзыва.
type Issuer struct {
	repository Repository
	shipments  ShipmentReader
	generator  Generator
	txManager  TxManager
	log        logger.Logger
	reviewTTL  time.Duration
	now        func() time.Time
}

func New(
	repository Repository,
	shipments ShipmentReader,
	generator Generator,
	txManager TxManager,
	log logger.Logger,
	reviewTTL time.Duration,
) *Issuer {
	if reviewTTL <= 0 {
		reviewTTL = DefaultReviewTokenTTL
	}
	if generator == nil {
		generator = RandomGenerator{}
	}

	return &Issuer{
		repository: repository,
		shipments:  shipments,
		generator:  generator,
		txManager:  txManager,
		log:        log.With(logger.NewField("component", "token-issuer")),
		reviewTTL:  reviewTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// IssueVerificationCode гасит прежний неиспользованный код и сохраняет новый.
func (i *Issuer) IssueVerificationCode(ctx context.Context, shipmentID uuid.UUID) (*entities.VerificationCode, error) {
	if shipmentID == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}

	value, err := i.generator.VerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	code := entities.VerificationCode{
		ID:         uuid.New(),
		ShipmentID: shipmentID,
		Code:       value,
		IssuedAt:   i.now(),
	}

	err = i.txManager.Do(ctx, func(ctx context.Context) error {
		return i.repository.ReplaceVerificationCode(ctx, code)
	})
	if err != nil {
		return nil, fmt.Errorf("store verification code: %w", err)
	}

	TokensIssuedTotal.WithLabelValues(kindCode).Inc()
	return &code, nil
}

// ConsumeVerificationCode успешен ровно один раз для выданного кода.
// Неверный код оставляет действующий код нетронутым.
func (i *Issuer) ConsumeVerificationCode(ctx context.Context, shipmentID uuid.UUID, code string) error {
	if code == "" {
		TokensConsumedTotal.WithLabelValues(kindCode, "missing").Inc()
		return fmt.Errorf("%w: %w", apperr.ErrMissingOrInvalidEvidence, ErrEmptyCode)
	}

	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		active, err := i.repository.GetActiveVerificationCode(ctx, shipmentID)
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("no active code: %w", apperr.ErrMissingOrInvalidEvidence)
		}
		if err != nil {
			return fmt.Errorf("get active code: %w", err)
		}

		if subtle.ConstantTimeCompare([]byte(active.Code), []byte(code)) != 1 {
			return fmt.Errorf("code mismatch: %w", apperr.ErrMissingOrInvalidEvidence)
		}

		return i.repository.ConsumeVerificationCode(ctx, active.ID, i.now())
	})
	if err != nil {
		TokensConsumedTotal.WithLabelValues(kindCode, "rejected").Inc()
		return err
	}

	TokensConsumedTotal.WithLabelValues(kindCode, "ok").Inc()
	return nil
}

// RevokeVerificationCode гасит действующий код отправки, если он есть.
// Погашенный код удаляется очисткой вместе с использованными.
func (i *Issuer) RevokeVerificationCode(ctx context.Context, shipmentID uuid.UUID) error {
	revoked := false
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		active, err := i.repository.GetActiveVerificationCode(ctx, shipmentID)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get active code: %w", err)
		}

		revoked = true
		return i.repository.ConsumeVerificationCode(ctx, active.ID, i.now())
	})
	if err != nil {
		return fmt.Errorf("revoke verification code: %w", err)
	}

	if revoked {
		TokensConsumedTotal.WithLabelValues(kindCode, "revoked").Inc()
	}
	return nil
}

// IssueReviewToken возвращает сырой токен один раз, в хранилище попадает только хэш.
func (i *Issuer) IssueReviewToken(ctx context.Context, shipmentID uuid.UUID) (*entities.ReviewToken, error) {
	if shipmentID == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}

	raw, err := i.generator.ReviewToken()
	if err != nil {
		return nil, fmt.Errorf("generate review token: %w", err)
	}

	now := i.now()
	token := entities.ReviewToken{
		Token:      raw,
		TokenHash:  HashToken(raw),
		ShipmentID: shipmentID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(i.reviewTTL),
	}

	err = i.txManager.Do(ctx, func(ctx context.Context) error {
		return i.repository.CreateReviewToken(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("store review token: %w", err)
	}

	TokensIssuedTotal.WithLabelValues(kindReview).Inc()
	return &token, nil
}

// LookupReviewToken проверяет токен, не погашая его.
func (i *Issuer) LookupReviewToken(ctx context.Context, raw string) (*entities.ReviewToken, error) {
	if raw == "" {
		return nil, ErrEmptyToken
	}

	var token *entities.ReviewToken
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		token, err = i.usableReviewToken(ctx, HashToken(raw))
		return err
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// ConsumeReviewToken гасит токен: он должен быть не просрочен, не использован,
// а посылка должна быть в статусе delivered.
func (i *Issuer) ConsumeReviewToken(ctx context.Context, raw string) (*entities.ReviewToken, error) {
	if raw == "" {
		return nil, ErrEmptyToken
	}

	hash := HashToken(raw)
	var token *entities.ReviewToken
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		token, err = i.usableReviewToken(ctx, hash)
		if err != nil {
			return err
		}

		consumedAt := i.now()
		if err := i.repository.ConsumeReviewToken(ctx, hash, consumedAt); err != nil {
			return fmt.Errorf("consume review token: %w", err)
		}
		token.ConsumedAt = &consumedAt
		return nil
	})
	if err != nil {
		TokensConsumedTotal.WithLabelValues(kindReview, "rejected").Inc()
		return nil, err
	}

	TokensConsumedTotal.WithLabelValues(kindReview, "ok").Inc()
	return token, nil
}

func (i *Issuer) usableReviewToken(ctx context.Context, hash string) (*entities.ReviewToken, error) {
	token, err := i.repository.GetReviewToken(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get review token: %w", err)
	}

	if token.IsConsumed() {
		return nil, fmt.Errorf("already used: %w", apperr.ErrTokenExpiredOrConsumed)
	}
	if token.IsExpired(i.now()) {
		return nil, fmt.Errorf("expired at %s: %w", token.ExpiresAt.Format(time.RFC3339), apperr.ErrTokenExpiredOrConsumed)
	}

	shipment, err := i.shipments.GetByID(ctx, token.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if shipment.Status != entities.StatusDelivered {
		return nil, fmt.Errorf("shipment is %s: %w", shipment.Status, apperr.ErrTokenExpiredOrConsumed)
	}

	return token, nil
}

// CleanupExpired удаляет просроченные токены отзыва и погашенные коды старше срока жизни токена.
func (i *Issuer) CleanupExpired(ctx context.Context) (int64, error) {
	now := i.now()

	var deleted int64
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = i.repository.DeleteExpired(ctx, now, now.Add(-i.reviewTTL))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	if deleted > 0 {
		TokensDeletedTotal.Add(float64(deleted))
		i.log.Info("expired tokens removed", logger.NewField("count", deleted))
	}
	return deleted, nil
}

// SetClock подменяет источник времени.
func (i *Issuer) SetClock(now func() time.Time) {
	i.now = now
}
