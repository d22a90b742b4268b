package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reArtCode = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,19}$`)
	rePhone   = regexp.MustCompile(`^[0-9+() -]{7,20}$`)
	reDate    = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	reTime    = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (uuid or slug).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// ArtCode validates the unique gallery catalogue code, e.g. "ART-0042".
func ArtCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reArtCode.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, rePhone.MatchString(s)
}

// Date validates YYYY-MM-DD and rejects impossible calendar dates.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reDate.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// Clock validates HH:MM, 24-hour.
func Clock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reTime.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return "", false
	}
	return s, true
}

// Password enforces the account-password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
