package partner

import (
	"net/mail"
	"slices"
	"strings"

	"tracker/internal/entities"
)

const maxNameLength = 200

func isValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= maxNameLength
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidCapacity(capacity int) bool {
	return capacity >= 0
}

// normalizeZipCodes проверяет индексы и убирает дубли, сохраняя порядок.
func normalizeZipCodes(zips []string) ([]string, bool) {
	out := make([]string, 0, len(zips))
	for _, zip := range zips {
		normalized, ok := entities.NormalizeZipCode(zip)
		if !ok {
			return nil, false
		}
		if !slices.Contains(out, normalized) {
			out = append(out, normalized)
		}
	}
	return out, true
}

func addedZipCodes(before, after []string) []string {
	added := make([]string, 0)
	for _, zip := range after {
		if !slices.Contains(before, zip) {
			added = append(added, zip)
		}
	}
	return added
}
