package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func (d *testDeps) questDomain() *questDomain {
	return NewQuestDomain(
		repository.NewQuestRepository(),
		d.activityRepo,
		d.store,
		d.engine,
		d.evaluator,
		d.redisClient,
	)
}

func Test_questDomain_Complete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertQuests(ctx)
	deps := newTestDeps(ctx)
	questDomain := deps.questDomain()

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	resp, err := questDomain.Complete(ctxPlayer1, &model.CompleteQuestRequest{
		QuestID: testutil.Quest1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(200), resp.ActualXPAwarded)
	require.Equal(t, []string{"badge_first_steps"}, resp.AwardedBadges)

	_, err = questDomain.Complete(ctxPlayer1, &model.CompleteQuestRequest{
		QuestID: testutil.Quest1,
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	state, err := deps.playerStateRepo.Get(ctx, testutil.Player1)
	require.NoError(t, err)
	require.Equal(t, int64(200), state.XP)
	require.Equal(t, int64(1), state.QuestsCompleted)
	require.Equal(t, []string{"badge_first_steps"}, state.Badges)
}

func Test_questDomain_Complete_inactiveOrExpired(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps(ctx)
	questDomain := deps.questDomain()

	questRepo := repository.NewQuestRepository()
	require.NoError(t, questRepo.Create(ctx, &entity.Quest{
		Base:     entity.Base{ID: "quest_inactive"},
		Title:    "Dormant",
		XPReward: 10,
		IsActive: false,
	}))
	require.NoError(t, questRepo.Create(ctx, &entity.Quest{
		Base:     entity.Base{ID: "quest_expired"},
		Title:    "Too late",
		XPReward: 10,
		IsActive: true,
		ExpiresAt: sql.NullTime{
			Time:  time.Now().Add(-time.Hour),
			Valid: true,
		},
	}))

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	_, err := questDomain.Complete(ctxPlayer1, &model.CompleteQuestRequest{
		QuestID: "quest_inactive",
	})
	require.Error(t, err)

	_, err = questDomain.Complete(ctxPlayer1, &model.CompleteQuestRequest{
		QuestID: "quest_expired",
	})
	require.Error(t, err)

	// Neither attempt awarded anything.
	state, err := deps.playerStateRepo.Get(ctx, testutil.Player1)
	require.NoError(t, err)
	require.Equal(t, int64(0), state.XP)
}

func Test_questDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertQuests(ctx)
	newTestDeps(ctx)

	questRepo := repository.NewQuestRepository()
	require.NoError(t, questRepo.Create(ctx, &entity.Quest{
		Base:     entity.Base{ID: "quest_hidden"},
		Title:    "Hidden",
		IsActive: false,
	}))

	questDomain := NewQuestDomain(
		questRepo, repository.NewActivityRepository(), testutil.NewStore(), nil, nil,
		&testutil.MockRedisClient{})

	resp, err := questDomain.GetList(ctx, &model.GetQuestsRequest{ActiveOnly: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest1, resp.Quests[0].ID)

	resp, err = questDomain.GetList(ctx, &model.GetQuestsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 2)
}
