package usecase

import (
	"regexp"
	"strings"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
)

var (
	phonePattern    = regexp.MustCompile(`^\+9627\d{8}$`)
	phoneDigitsOnly = regexp.MustCompile(`[^0-9+]`)
)

// NormalizeJordanPhone canonicalizes a Jordanian mobile number into the
// +9627XXXXXXXX form. Accepted spellings: +9627..., 009627..., 07..., and
// bare 7XXXXXXXX. Anything else is rejected as ErrInvalidPhone.
func NormalizeJordanPhone(value string) (string, error) {
	if value == "" {
		return "", domainErrors.ErrInvalidPhone
	}

	digits := phoneDigitsOnly.ReplaceAllString(value, "")

	var normalized string
	switch {
	case strings.HasPrefix(digits, "+962"):
		normalized = "+962" + digits[4:]
	case strings.HasPrefix(digits, "00962"):
		normalized = "+962" + digits[5:]
	case strings.HasPrefix(digits, "07"):
		normalized = "+962" + digits[1:]
	case strings.HasPrefix(digits, "7") && len(digits) == 9:
		normalized = "+962" + digits
	default:
		return "", domainErrors.ErrInvalidPhone
	}

	if !phonePattern.MatchString(normalized) {
		return "", domainErrors.ErrInvalidPhone
	}
	return normalized, nil
}
