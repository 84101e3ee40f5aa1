package entities

import (
	"time"

	"github.com/google/uuid"
)

type VerificationCode struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	Code       string
	IssuedAt   time.Time
	ConsumedAt *time.Time
}

func (c *VerificationCode) IsConsumed() bool {
	return c.ConsumedAt != nil
}

type ReviewToken struct {
	// Token заполняется только при выпуске, хранится лишь хэш
	Token      string
	TokenHash  string
	ShipmentID uuid.UUID
	IssuedAt   time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}

func (t *ReviewToken) IsConsumed() bool {
	return t.ConsumedAt != nil
}

func (t *ReviewToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type Review struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}

type ReviewSubmit struct {
	Token   string
	Rating  int
	Comment *string
}

type NotificationKind string

const (
	NotificationVerificationCode NotificationKind = "verification_code"
	NotificationReviewLink       NotificationKind = "review_link"
)

func (k NotificationKind) String() string {
	return string(k)
}

// Notification уходит внешнему почтовому сервису, сама доставка вне этого сервиса.
type Notification struct {
	Kind        NotificationKind
	ShipmentID  uuid.UUID
	Email       string
	Phone       *string
	Code        string
	ReviewToken string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}
