package shipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// GetReviewTarget возвращает отправку, к которой относится ещё действующий токен отзыва.
func (s *Service) GetReviewTarget(ctx context.Context, token string) (*entities.Shipment, error) {
	var shipment *entities.Shipment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reviewToken, err := s.tokens.LookupReviewToken(ctx, token)
		if err != nil {
			return err
		}

		shipment, err = s.repository.GetByID(ctx, reviewToken.ShipmentID)
		if err != nil {
			return fmt.Errorf("get shipment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// SubmitReview гасит токен и сохраняет отзыв в одной транзакции.
func (s *Service) SubmitReview(ctx context.Context, submit entities.ReviewSubmit) (*entities.Review, error) {
	if submit.Token == "" {
		return nil, ErrMissingRequiredFields
	}
	if !isValidRating(submit.Rating) {
		return nil, ErrInvalidRating
	}
	if submit.Comment != nil && !isValidComment(*submit.Comment) {
		return nil, ErrInvalidComment
	}

	var review entities.Review
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		token, err := s.tokens.ConsumeReviewToken(ctx, submit.Token)
		if err != nil {
			return err
		}

		review = entities.Review{
			ID:         uuid.New(),
			ShipmentID: token.ShipmentID,
			Rating:     submit.Rating,
			Comment:    submit.Comment,
			CreatedAt:  s.now(),
		}
		if err := s.repository.CreateReview(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ReviewsSubmittedTotal.Inc()
	s.log.Info("review submitted",
		logger.NewField("shipment", review.ShipmentID.String()),
		logger.NewField("rating", review.Rating),
	)
	return &review, nil
}
