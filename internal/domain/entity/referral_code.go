package entity

import (
	"crypto/rand"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// ReferralCodeLength is the canonical referral code length
const ReferralCodeLength = 8

// referralCodeAlphabet is the character set codes are drawn from.
// 36^8 candidates make collisions rare but not impossible; the registry
// retries assignment on collision.
const referralCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var referralCodePattern = regexp.MustCompile(`^[0-9A-Z]{8}$`)

// IsValidReferralCode reports whether code matches the canonical format:
// 8 characters, uppercase alphanumeric.
func IsValidReferralCode(code string) bool {
	return referralCodePattern.MatchString(code)
}

// IsLegacyReferralCode reports whether code is from the retired UUID scheme.
// Legacy codes are treated as absent by the registry and replaced once.
func IsLegacyReferralCode(code string) bool {
	if code == "" {
		return false
	}
	_, err := uuid.Parse(code)
	return err == nil
}

// GenerateReferralCode draws a fresh candidate code from a
// cryptographically strong random source. Bytes at or above the largest
// multiple of the alphabet size are discarded so every character is
// equally likely.
func GenerateReferralCode() (string, error) {
	// 252 = 7 * 36, the largest multiple of the alphabet size below 256
	const rejectAbove = 256 - 256%len(referralCodeAlphabet)

	code := make([]byte, 0, ReferralCodeLength)
	buf := make([]byte, ReferralCodeLength)
	for len(code) < ReferralCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			code = append(code, referralCodeAlphabet[int(b)%len(referralCodeAlphabet)])
			if len(code) == ReferralCodeLength {
				break
			}
		}
	}
	return string(code), nil
}
