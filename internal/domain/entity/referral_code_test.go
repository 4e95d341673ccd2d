package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidReferralCode(t *testing.T) {
	t.Run("Canonical codes", func(t *testing.T) {
		assert.True(t, IsValidReferralCode("ABCD1234"))
		assert.True(t, IsValidReferralCode("00000000"))
		assert.True(t, IsValidReferralCode("ZZZZZZZZ"))
	})

	t.Run("Rejected codes", func(t *testing.T) {
		testCases := []struct {
			code        string
			description string
		}{
			{"", "Empty"},
			{"ABC1234", "Too short"},
			{"ABCD12345", "Too long"},
			{"abcd1234", "Lowercase"},
			{"ABCD-234", "Punctuation"},
			{"ABCD 234", "Whitespace"},
			{"550e8400-e29b-41d4-a716-446655440000", "Legacy UUID"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				assert.False(t, IsValidReferralCode(tc.code))
			})
		}
	})
}

func TestIsLegacyReferralCode(t *testing.T) {
	assert.True(t, IsLegacyReferralCode("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsLegacyReferralCode(""))
	assert.False(t, IsLegacyReferralCode("ABCD1234"))
	assert.False(t, IsLegacyReferralCode("not-a-uuid"))
}

func TestGenerateReferralCode(t *testing.T) {
	t.Run("Generated codes match the canonical format", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := GenerateReferralCode()
			require.NoError(t, err)
			assert.True(t, IsValidReferralCode(code), "generated code %q is not canonical", code)
		}
	})

	t.Run("Every alphabet character is drawn", func(t *testing.T) {
		counts := make(map[byte]int)
		for i := 0; i < 500; i++ {
			code, err := GenerateReferralCode()
			require.NoError(t, err)
			for j := 0; j < len(code); j++ {
				counts[code[j]]++
			}
		}
		// 4000 draws over 36 characters; a character that never shows up
		// means part of the alphabet is unreachable.
		for i := 0; i < len(referralCodeAlphabet); i++ {
			assert.Greater(t, counts[referralCodeAlphabet[i]], 0,
				"character %q was never drawn", string(referralCodeAlphabet[i]))
		}
	})

	t.Run("Consecutive codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := GenerateReferralCode()
			require.NoError(t, err)
			seen[code] = true
		}
		// 36^8 candidates; 50 draws colliding would point at a broken source.
		assert.Greater(t, len(seen), 45)
	})
}
