package utils

import (
	"regexp"
	"strings"
)

// IdentifierKind tells which delivery channel an identifier belongs to
type IdentifierKind int

const (
	IdentifierInvalid IdentifierKind = iota
	IdentifierEmail
	IdentifierPhone
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	default:
		return "invalid"
	}
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Classify decides whether identifier is an email address or a phone number.
// Email is tried first.
func Classify(identifier string) IdentifierKind {
	if IsValidEmail(identifier) {
		return IdentifierEmail
	}
	if IsValidPhone(identifier) {
		return IdentifierPhone
	}
	return IdentifierInvalid
}

// IsValidEmail checks the address against the accepted email format
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone checks an E.164-like number, ignoring spaces and hyphens
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// NormalizePhone strips the separators users commonly type into phone numbers
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(phone)
}
