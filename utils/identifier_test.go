package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		identifier string
		want       IdentifierKind
	}{
		{"user@example.com", IdentifierEmail},
		{"first.last+tag@sub.example.co", IdentifierEmail},
		{"+14155550123", IdentifierPhone},
		{"14155550123", IdentifierPhone},
		{"+1 415-555-0123", IdentifierPhone},
		{"98", IdentifierPhone},
		{"not-an-identifier", IdentifierInvalid},
		{"", IdentifierInvalid},
		{"0123456789", IdentifierInvalid},
		{"+1234567890123456", IdentifierInvalid},
		{"user@example", IdentifierInvalid},
		{"user@example.c", IdentifierInvalid},
		{"5", IdentifierInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.identifier, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.identifier))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+14155550123", NormalizePhone("+1 415-555-0123"))
}

func TestIdentifierKindString(t *testing.T) {
	assert.Equal(t, "email", IdentifierEmail.String())
	assert.Equal(t, "phone", IdentifierPhone.String())
	assert.Equal(t, "invalid", IdentifierInvalid.String())
}
