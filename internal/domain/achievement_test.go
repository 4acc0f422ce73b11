package domain

import (
	"testing"

	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func (d *testDeps) achievementDomain() *achievementDomain {
	return NewAchievementDomain(
		repository.NewAchievementRepository(),
		d.playerStateRepo,
		d.evaluator,
		d.redisClient,
	)
}

func Test_achievementDomain_CheckAndGetMy(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertAchievements(ctx)
	deps := newTestDeps(ctx)
	achievementDomain := deps.achievementDomain()

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)

	// Nothing unlocked at zero XP.
	resp, err := achievementDomain.Check(ctxPlayer1, &model.CheckAchievementsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Unlocked)

	my, err := achievementDomain.GetMy(ctxPlayer1, &model.GetMyAchievementsRequest{})
	require.NoError(t, err)
	require.Empty(t, my.Achievements)

	// Crossing the XP requirement makes the next check unlock it.
	_, err = deps.engine.AwardXP(ctx, testutil.Player1, 100)
	require.NoError(t, err)

	resp, err = achievementDomain.Check(ctxPlayer1, &model.CheckAchievementsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Unlocked, 1)
	require.Equal(t, testutil.Ach100XP, resp.Unlocked[0].ID)
	require.Equal(t, int64(50), resp.Unlocked[0].XPAwarded)

	// The unlock is recorded once; a second check finds nothing new.
	resp, err = achievementDomain.Check(ctxPlayer1, &model.CheckAchievementsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Unlocked)

	my, err = achievementDomain.GetMy(ctxPlayer1, &model.GetMyAchievementsRequest{})
	require.NoError(t, err)
	require.Len(t, my.Achievements, 1)
	require.Equal(t, "Centurion", my.Achievements[0].Name)
}
