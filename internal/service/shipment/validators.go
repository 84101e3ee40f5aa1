package shipment

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"tracker/internal/entities"
)

const (
	minContentLength     = 1
	maxContentLength     = 100
	minWeight            = 1.0
	maxWeight            = 25.0
	maxDescriptionLength = 500
	maxCommentLength     = 1000
	minPhoneDigits       = 7
	maxPhoneDigits       = 15
	minRating            = 1
	maxRating            = 5
)

func isValidContent(content string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	return n >= minContentLength && n <= maxContentLength
}

func isValidWeight(weight float64) bool {
	return weight >= minWeight && weight <= maxWeight
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// isValidPhone принимает номер в формате E.164: '+' и 7-15 цифр.
func isValidPhone(phone string) bool {
	digits, ok := strings.CutPrefix(phone, "+")
	if !ok || len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return false
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func isValidDescription(description string) bool {
	return utf8.RuneCountInString(description) <= maxDescriptionLength
}

func isValidRating(rating int) bool {
	return rating >= minRating && rating <= maxRating
}

func isValidComment(comment string) bool {
	return utf8.RuneCountInString(comment) <= maxCommentLength
}

func validateCreate(create entities.ShipmentCreate) (string, error) {
	if create.Content == nil ||
		create.Weight == nil ||
		create.Destination == nil ||
		create.ClientContactEmail == nil {
		return "", ErrMissingRequiredFields
	}
	if !isValidContent(*create.Content) {
		return "", ErrInvalidContent
	}
	if !isValidWeight(*create.Weight) {
		return "", ErrInvalidWeight
	}
	zip, ok := entities.NormalizeZipCode(*create.Destination)
	if !ok {
		return "", ErrInvalidDestination
	}
	if !isValidEmail(*create.ClientContactEmail) {
		return "", ErrInvalidEmail
	}
	if create.ClientContactPhone != nil && !isValidPhone(*create.ClientContactPhone) {
		return "", ErrInvalidPhone
	}
	for _, name := range create.Tags {
		if !name.IsValid() {
			return "", ErrInvalidTag
		}
	}
	return zip, nil
}

func validateUpdate(update entities.ShipmentUpdate) error {
	if update.Status == nil &&
		update.Location == nil &&
		update.Description == nil &&
		update.EstimatedDelivery == nil {
		return ErrNoChanges
	}
	if update.Status != nil && !update.Status.IsValid() {
		return ErrInvalidStatus
	}
	if update.Location != nil {
		if _, ok := entities.NormalizeZipCode(*update.Location); !ok {
			return ErrInvalidLocation
		}
	}
	if update.Description != nil && !isValidDescription(*update.Description) {
		return ErrInvalidDescription
	}
	return nil
}
