package migration

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/model"
)

// Users register without a referral code and only receive one lazily. An
// unconditional unique index on the column would make the second
// registration collide with the first's empty code, so uniqueness must
// only cover assigned codes.
func TestReferralCodeUniquenessIsPartial(t *testing.T) {
	t.Run("Model declares no unconditional unique index", func(t *testing.T) {
		field, ok := reflect.TypeOf(model.User{}).FieldByName("ReferralCode")
		require.True(t, ok)
		assert.NotContains(t, field.Tag.Get("gorm"), "uniqueIndex")
	})

	t.Run("Migration creates a partial unique index on assigned codes", func(t *testing.T) {
		var found bool
		for _, ddl := range indexDDL {
			if !strings.Contains(ddl, "idx_users_referral_code") {
				continue
			}
			found = true
			assert.Contains(t, ddl, "UNIQUE")
			assert.Contains(t, ddl, "ON users (referral_code)")
			assert.Contains(t, ddl, "WHERE referral_code <> ''")
		}
		require.True(t, found, "no index statement covers users.referral_code")
	})
}

func TestInvariantIndexes(t *testing.T) {
	joined := strings.Join(indexDDL, "\n")

	t.Run("One pending deposit per user", func(t *testing.T) {
		assert.Contains(t, joined, "idx_deposits_one_pending_per_user")
		assert.Contains(t, joined, "WHERE status = 'pending'")
	})

	t.Run("One reward per referrer and referred pair", func(t *testing.T) {
		assert.Contains(t, joined, "idx_reward_pair")
		assert.Contains(t, joined, "(referrer_id, referred_user_id)")
	})

	t.Run("Uncredited rewards are scannable", func(t *testing.T) {
		assert.Contains(t, joined, "idx_rewards_uncredited")
		assert.Contains(t, joined, "WHERE credited_at IS NULL")
	})
}
