package engine

import (
	"math"
	"os"
	"strconv"
)

// The canonical reward formula is the fractional bonus: a successful task
// returns the stake plus floor(stake * rate). The stake-doubling variant that
// existed in an earlier admin path was dropped in favor of one formula.
const DefaultRewardRate = 0.05

const DefaultXPAward = 50

func Reward(stake int64, rate float64) int64 {
	if stake <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Floor(float64(stake) * rate))
}

// RewardRate reads REWARD_RATE from env, falling back to the default.
func RewardRate() float64 {
	if s := os.Getenv("REWARD_RATE"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 && v <= 1 {
			return v
		}
	}
	return DefaultRewardRate
}

// XPAward reads XP_AWARD from env, falling back to the default.
func XPAward() int64 {
	if s := os.Getenv("XP_AWARD"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			return v
		}
	}
	return DefaultXPAward
}
