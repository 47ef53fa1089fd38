package util

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,}$`)

// NormalizeEmail trims whitespace and lowercases an address; candidate
// emails are stored and compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
