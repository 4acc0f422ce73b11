package progression

import (
	"testing"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Level(t *testing.T) {
	require.Equal(t, int64(1), Level(0))
	require.Equal(t, int64(1), Level(99))
	require.Equal(t, int64(2), Level(100))
	require.Equal(t, int64(2), Level(399))
	require.Equal(t, int64(3), Level(400))

	// Non-decreasing over a dense range.
	prev := int64(0)
	for xp := int64(0); xp <= 5000; xp += 13 {
		level := Level(xp)
		require.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

func Test_XPForLevel(t *testing.T) {
	require.Equal(t, int64(0), XPForLevel(0))
	require.Equal(t, int64(100), XPForLevel(1))
	require.Equal(t, int64(400), XPForLevel(2))
	require.Equal(t, int64(900), XPForLevel(3))
}

func Test_Progress(t *testing.T) {
	// At 150 XP the player is level 2; the level spans from 100 to 400.
	progress, needed := Progress(150)
	require.Equal(t, int64(50), progress)
	require.Equal(t, int64(300), needed)
}

func Test_Multiplier(t *testing.T) {
	ctx := testutil.MockContext()

	// The streak term is capped at 0.5 no matter how long the streak.
	state := &entity.PlayerState{Streak: 1000, TeamID: "team1"}
	require.Equal(t, 1.6, Multiplier(ctx, state))

	state = &entity.PlayerState{Streak: 10}
	require.Equal(t, 1.1, Multiplier(ctx, state))

	state = &entity.PlayerState{}
	require.Equal(t, 1.0, Multiplier(ctx, state))
}
