package entities

import "strings"

const (
	zipCodeMinLen = 3
	zipCodeMaxLen = 10
)

// NormalizeZipCode обрезает пробелы и проверяет, что индекс состоит из 3-10 цифр.
func NormalizeZipCode(zip string) (string, bool) {
	zip = strings.TrimSpace(zip)
	if len(zip) < zipCodeMinLen || len(zip) > zipCodeMaxLen {
		return "", false
	}
	for _, ch := range zip {
		if ch < '0' || ch > '9' {
			return "", false
		}
	}
	return zip, true
}
