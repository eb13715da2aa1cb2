package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// OTPLength is the number of digits in every generated OTP
const OTPLength = 6

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	return randomDigits(OTPLength)
}

// randomDigits draws each digit independently and uniformly from 0-9
func randomDigits(n int) string {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String()
}

// GenerateTokenKey returns a fresh opaque key for bearer tokens
func GenerateTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
