package domain

import (
	"testing"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func (d *testDeps) teamDomain() *teamDomain {
	return NewTeamDomain(
		repository.NewTeamRepository(),
		d.playerStateRepo,
		d.activityRepo,
		d.store,
		d.redisClient,
	)
}

func Test_teamDomain_Join(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertTeams(ctx)
	deps := newTestDeps(ctx)
	teamDomain := deps.teamDomain()

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	_, err := teamDomain.Join(ctxPlayer1, &model.JoinTeamRequest{
		TeamID: testutil.Team1,
	})
	require.NoError(t, err)

	// The membership and the team_id mirror are both recorded.
	state, err := deps.playerStateRepo.Get(ctx, testutil.Player1)
	require.NoError(t, err)
	require.Equal(t, testutil.Team1, state.TeamID)

	resp, err := teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{
		TeamID: testutil.Team1,
	})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Player1}, resp.MemberIDs)
	require.Equal(t, 3, resp.MaxMembers)

	// Rejoining the same team is a duplicate fact.
	_, err = teamDomain.Join(ctxPlayer1, &model.JoinTeamRequest{
		TeamID: testutil.Team1,
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	count, err := deps.activityRepo.Count(ctx, testutil.Player1, entity.ActivityTeamJoined)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	_, err = teamDomain.Join(ctxPlayer1, &model.JoinTeamRequest{
		TeamID: "not-found-team",
	})
	require.Error(t, err)
}

func Test_teamDomain_Join_singleTeamOnly(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertTeams(ctx)
	deps := newTestDeps(ctx)
	teamDomain := deps.teamDomain()

	teamRepo := repository.NewTeamRepository()
	require.NoError(t, teamRepo.Create(ctx, &entity.Team{
		Base:       entity.Base{ID: "team2"},
		Name:       "Rustaceans",
		LeaderID:   testutil.Player2,
		MaxMembers: 3,
	}))

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	_, err := teamDomain.Join(ctxPlayer1, &model.JoinTeamRequest{
		TeamID: testutil.Team1,
	})
	require.NoError(t, err)

	// A player belongs to at most one team.
	_, err = teamDomain.Join(ctxPlayer1, &model.JoinTeamRequest{
		TeamID: "team2",
	})
	require.True(t, errorx.Is(err, errorx.Unavailable))
}

func Test_teamDomain_Join_capacity(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps(ctx)
	teamDomain := deps.teamDomain()

	teamRepo := repository.NewTeamRepository()
	require.NoError(t, teamRepo.Create(ctx, &entity.Team{
		Base:       entity.Base{ID: "duo"},
		Name:       "Duo",
		LeaderID:   testutil.Player1,
		MaxMembers: 2,
	}))

	for _, playerID := range []string{testutil.Player1, testutil.Player2} {
		playerCtx := testutil.MockContextWithUserID(ctx, playerID)
		_, err := teamDomain.Join(playerCtx, &model.JoinTeamRequest{TeamID: "duo"})
		require.NoError(t, err)
	}

	// The team is full.
	ctxPlayer3 := testutil.MockContextWithUserID(ctx, testutil.Player3)
	_, err := teamDomain.Join(ctxPlayer3, &model.JoinTeamRequest{TeamID: "duo"})
	require.True(t, errorx.Is(err, errorx.CapacityExceeded))

	// The rejected player keeps no trace of the attempt.
	state, err := deps.playerStateRepo.Get(ctx, testutil.Player3)
	require.NoError(t, err)
	require.Empty(t, state.TeamID)

	resp, err := teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{TeamID: "duo"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{testutil.Player1, testutil.Player2}, resp.MemberIDs)
}

func Test_teamDomain_GetMembers_emptyTeam(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertTeams(ctx)
	deps := newTestDeps(ctx)
	teamDomain := deps.teamDomain()

	// No document exists yet because nobody has joined.
	resp, err := teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{
		TeamID: testutil.Team1,
	})
	require.NoError(t, err)
	require.Empty(t, resp.MemberIDs)
	require.Equal(t, 3, resp.MaxMembers)

	_, err = teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{TeamID: ""})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}
