package domain

import (
	"testing"

	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func (d *testDeps) friendDomain() *friendDomain {
	return NewFriendDomain(
		d.playerStateRepo,
		d.activityRepo,
		d.store,
		d.evaluator,
		d.redisClient,
	)
}

func Test_friendDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps(ctx)
	friendDomain := deps.friendDomain()

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	ctxPlayer2 := testutil.MockContextWithUserID(ctx, testutil.Player2)

	// Send a request from player1 to player2.
	_, err := friendDomain.SendRequest(ctxPlayer1, &model.SendFriendRequestRequest{
		PlayerID: testutil.Player2,
	})
	require.NoError(t, err)

	// A repeated send is a duplicate.
	_, err = friendDomain.SendRequest(ctxPlayer1, &model.SendFriendRequestRequest{
		PlayerID: testutil.Player2,
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	// Self-friending is invalid.
	_, err = friendDomain.SendRequest(ctxPlayer1, &model.SendFriendRequestRequest{
		PlayerID: testutil.Player1,
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	// The pending fact is visible from both sides.
	resp, err := friendDomain.GetFriends(ctxPlayer1, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Player2}, resp.PendingSent)

	resp, err = friendDomain.GetFriends(ctxPlayer2, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Player1}, resp.PendingReceived)

	// Player2 accepts.
	_, err = friendDomain.AcceptRequest(ctxPlayer2, &model.AcceptFriendRequestRequest{
		PlayerID: testutil.Player1,
	})
	require.NoError(t, err)

	// Friendship is symmetric and the pending sets are cleaned up.
	state1, err := deps.playerStateRepo.Get(ctx, testutil.Player1)
	require.NoError(t, err)
	state2, err := deps.playerStateRepo.Get(ctx, testutil.Player2)
	require.NoError(t, err)

	require.Equal(t, []string{testutil.Player2}, state1.Friends)
	require.Equal(t, []string{testutil.Player1}, state2.Friends)
	require.Empty(t, state1.RequestsSent)
	require.Empty(t, state1.RequestsReceived)
	require.Empty(t, state2.RequestsSent)
	require.Empty(t, state2.RequestsReceived)

	// Accepting again finds no pending request.
	_, err = friendDomain.AcceptRequest(ctxPlayer2, &model.AcceptFriendRequestRequest{
		PlayerID: testutil.Player1,
	})
	require.True(t, errorx.Is(err, errorx.NotFound))

	// Sending to an existing friend is rejected up front.
	_, err = friendDomain.SendRequest(ctxPlayer1, &model.SendFriendRequestRequest{
		PlayerID: testutil.Player2,
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))
}

func Test_friendDomain_Reject(t *testing.T) {
	ctx := testutil.MockContext()
	deps := newTestDeps(ctx)
	friendDomain := deps.friendDomain()

	ctxPlayer1 := testutil.MockContextWithUserID(ctx, testutil.Player1)
	ctxPlayer3 := testutil.MockContextWithUserID(ctx, testutil.Player3)

	_, err := friendDomain.SendRequest(ctxPlayer3, &model.SendFriendRequestRequest{
		PlayerID: testutil.Player1,
	})
	require.NoError(t, err)

	_, err = friendDomain.RejectRequest(ctxPlayer1, &model.RejectFriendRequestRequest{
		PlayerID: testutil.Player3,
	})
	require.NoError(t, err)

	// Both sides return to the initial state.
	state1, err := deps.playerStateRepo.Get(ctx, testutil.Player1)
	require.NoError(t, err)
	state3, err := deps.playerStateRepo.Get(ctx, testutil.Player3)
	require.NoError(t, err)

	require.Empty(t, state1.Friends)
	require.Empty(t, state1.RequestsReceived)
	require.Empty(t, state3.RequestsSent)

	// Rejecting a request that does not exist reports NotFound.
	_, err = friendDomain.RejectRequest(ctxPlayer1, &model.RejectFriendRequestRequest{
		PlayerID: testutil.Player3,
	})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
