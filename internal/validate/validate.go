package validate

import (
	"regexp"
	"strconv"
	"strings"

	"bookmarket/internal/domain"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Condition checks the seller-declared book condition against the
// accepted set.
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range domain.Conditions {
		if s == c {
			return s, true
		}
	}
	return s, false
}

// Status checks a lifecycle status value.
func Status(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case domain.StatusAvailable, domain.StatusSold, domain.StatusReserved:
		return s, true
	}
	return s, false
}

// Price parses a submitted price and rejects negatives.
func Price(s string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

// Password enforces a simple length window for signup/login checks.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72 // bcrypt input cap
}
