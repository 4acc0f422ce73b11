package achievement

import (
	"context"
	"testing"

	"github.com/learnverse/backend/internal/domain/progression"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(ctx context.Context, st store.AtomicStore) *Evaluator {
	activityRepo := repository.NewActivityRepository()
	leaderboardRepo := repository.NewLeaderboardRepository(&testutil.MockRedisClient{})
	engine := progression.NewEngine(st, activityRepo, leaderboardRepo)

	return NewEvaluator(st, repository.NewAchievementRepository(), activityRepo, engine)
}

func Test_Evaluator_Eligible(t *testing.T) {
	a := &entity.Achievement{
		RequirementKind:  entity.RequirementFriendCount,
		RequirementValue: 2,
	}

	ok, err := Eligible(a, &entity.PlayerState{Friends: []string{"x"}})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Eligible(a, &entity.PlayerState{Friends: []string{"x", "y"}})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = Eligible(&entity.Achievement{RequirementKind: "bogus"}, &entity.PlayerState{})
	require.Error(t, err)
}

func Test_Evaluator_Cascade(t *testing.T) {
	ctx := testutil.MockContext()
	st := testutil.NewStore()
	evaluator := newTestEvaluator(ctx, st)

	achievementRepo := repository.NewAchievementRepository()
	require.NoError(t, achievementRepo.Create(ctx, &entity.Achievement{
		Base:             entity.Base{ID: "ach_a"},
		Name:             "A",
		XPReward:         50,
		RequirementKind:  entity.RequirementXP,
		RequirementValue: 1000,
	}))
	require.NoError(t, achievementRepo.Create(ctx, &entity.Achievement{
		Base:             entity.Base{ID: "ach_b"},
		Name:             "B",
		RequirementKind:  entity.RequirementXP,
		RequirementValue: 1045,
	}))

	require.NoError(t, st.Create(ctx, store.CollectionPlayers, "player1", map[string]string{
		store.FieldXP:    "1000",
		store.FieldLevel: "4",
	}))

	// A is eligible at 1000 XP; its 50 XP reward pushes the player to
	// 1050, which makes B eligible within the same call.
	unlocked, err := evaluator.Evaluate(ctx, "player1")
	require.NoError(t, err)
	require.Len(t, unlocked, 2)
	require.Equal(t, "ach_a", unlocked[0].Achievement.ID)
	require.Equal(t, int64(50), unlocked[0].ActualXP)
	require.Equal(t, "ach_b", unlocked[1].Achievement.ID)

	snapshot, err := st.Get(ctx, store.CollectionPlayers, "player1")
	require.NoError(t, err)
	require.True(t, snapshot.InSet(store.SetAchievements, "ach_a"))
	require.True(t, snapshot.InSet(store.SetAchievements, "ach_b"))
	require.Equal(t, int64(1050), snapshot.Int(store.FieldXP))

	// Re-running unlocks nothing further.
	unlocked, err = evaluator.Evaluate(ctx, "player1")
	require.NoError(t, err)
	require.Empty(t, unlocked)
}

func Test_Evaluator_IneligibleUntouched(t *testing.T) {
	ctx := testutil.MockContext()
	st := testutil.NewStore()
	evaluator := newTestEvaluator(ctx, st)

	achievementRepo := repository.NewAchievementRepository()
	require.NoError(t, achievementRepo.Create(ctx, &entity.Achievement{
		Base:             entity.Base{ID: "ach_streak"},
		Name:             "Committed",
		RequirementKind:  entity.RequirementStreak,
		RequirementValue: 7,
	}))

	require.NoError(t, st.Create(ctx, store.CollectionPlayers, "player1", map[string]string{
		store.FieldStreak: "3",
	}))

	unlocked, err := evaluator.Evaluate(ctx, "player1")
	require.NoError(t, err)
	require.Empty(t, unlocked)

	snapshot, err := st.Get(ctx, store.CollectionPlayers, "player1")
	require.NoError(t, err)
	require.Equal(t, 0, snapshot.Card(store.SetAchievements))
}
