package entity

// Investment plan tiers in whole dollars. A deposit is only accepted when
// its amount matches one of these exactly.
var PlanTiers = []int64{50, 100, 150, 250, 500, 1000, 1500, 2500}

// PlanRewards maps a plan tier to the referral reward it generates, both in
// whole dollars. This is deliberately a table rather than a percentage
// formula: the values line up with 4% for the listed tiers, but a lookup
// cannot drift for amounts the table does not name.
var PlanRewards = map[int64]int64{
	50:   2,
	100:  4,
	150:  6,
	250:  10,
	500:  20,
	1000: 40,
	1500: 60,
	2500: 100,
}

// IsValidPlanAmount reports whether amount matches one of the plan tiers
func IsValidPlanAmount(amount int64) bool {
	for _, tier := range PlanTiers {
		if amount == tier {
			return true
		}
	}
	return false
}

// ReferralRewardFor returns the reward in whole dollars owed to a referrer
// for a confirmed deposit at the given tier. Unknown tiers yield 0; callers
// must not create a reward record in that case.
func ReferralRewardFor(planAmount int64) int64 {
	return PlanRewards[planAmount]
}
