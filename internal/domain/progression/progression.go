// Package progression owns the XP curve: the level formula, the reward
// multiplier, and the award path that keeps xp and level consistent.
package progression

import (
	"context"
	"math"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/xcontext"
)

const (
	defaultStreakBonusPerDay = 0.01
	defaultStreakBonusMax    = 0.5
	defaultTeamBonus         = 0.1
)

// Level maps total XP to a level. Monotonic non-decreasing, starts at 1.
func Level(xp int64) int64 {
	if xp <= 0 {
		return 1
	}

	return int64(math.Floor(math.Sqrt(float64(xp)/100))) + 1
}

// XPForLevel is the total XP at which the given level is reached.
func XPForLevel(level int64) int64 {
	if level < 1 {
		return 0
	}

	return level * level * 100
}

// Progress returns how far the player is into the current level and
// how much the level spans in total.
func Progress(xp int64) (progress, needed int64) {
	level := Level(xp)
	floor := XPForLevel(level - 1)
	return xp - floor, XPForLevel(level) - floor
}

// Multiplier computes the reward multiplier from the player's streak
// and team membership. The streak term is capped so a long streak
// cannot compound without bound; the team term is flat, not per team
// feature.
func Multiplier(ctx context.Context, state *entity.PlayerState) float64 {
	cfg := xcontext.Configs(ctx).Progression

	perDay := cfg.StreakBonusPerDay
	if perDay == 0 {
		perDay = defaultStreakBonusPerDay
	}

	maxBonus := cfg.StreakBonusMax
	if maxBonus == 0 {
		maxBonus = defaultStreakBonusMax
	}

	teamBonus := cfg.TeamBonus
	if teamBonus == 0 {
		teamBonus = defaultTeamBonus
	}

	streakBonus := math.Min(float64(state.Streak)*perDay, maxBonus)

	multiplier := 1.0 + streakBonus
	if state.HasTeam() {
		multiplier += teamBonus
	}

	return multiplier
}
