package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/domain/achievement"
	"github.com/learnverse/backend/internal/domain/transition"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
)

type FriendDomain interface {
	SendRequest(context.Context, *model.SendFriendRequestRequest) (*model.SendFriendRequestResponse, error)
	AcceptRequest(context.Context, *model.AcceptFriendRequestRequest) (*model.AcceptFriendRequestResponse, error)
	RejectRequest(context.Context, *model.RejectFriendRequestRequest) (*model.RejectFriendRequestResponse, error)
	GetFriends(context.Context, *model.GetFriendsRequest) (*model.GetFriendsResponse, error)
}

type friendDomain struct {
	playerStateRepo repository.PlayerStateRepository
	activityRepo    repository.ActivityRepository
	store           store.AtomicStore
	evaluator       *achievement.Evaluator
	redisClient     xredis.Client
}

func NewFriendDomain(
	playerStateRepo repository.PlayerStateRepository,
	activityRepo repository.ActivityRepository,
	st store.AtomicStore,
	evaluator *achievement.Evaluator,
	redisClient xredis.Client,
) *friendDomain {
	return &friendDomain{
		playerStateRepo: playerStateRepo,
		activityRepo:    activityRepo,
		store:           st,
		evaluator:       evaluator,
		redisClient:     redisClient,
	}
}

// SendRequest moves the relationship from None to Sent. The pending
// fact lives on both sides: the requester's sent set and the target's
// received set. The requester's own sets give the cheap duplicate
// rejection before the target document is touched at all.
func (d *friendDomain) SendRequest(
	ctx context.Context, req *model.SendFriendRequestRequest,
) (*model.SendFriendRequestResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PlayerID == "" || req.PlayerID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Invalid target player")
	}

	requester, err := d.playerStateRepo.Get(ctx, requestUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get requester state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	if requester.IsFriendOf(req.PlayerID) {
		return nil, errorx.New(errorx.AlreadyExists, "Already friends")
	}

	if requester.HasSentRequestTo(req.PlayerID) {
		return nil, errorx.New(errorx.AlreadyExists, "Request already sent")
	}

	if requester.HasReceivedRequestFrom(req.PlayerID) {
		return nil, errorx.New(errorx.AlreadyExists,
			"This player already sent you a request")
	}

	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   req.PlayerID,
		Field:      store.SetRequestsReceived,
		Member:     requestUserID,
	})
	if err != nil {
		return nil, err
	}

	// Mirror the pending fact on the requester's side. A duplicate
	// outcome means a concurrent send already recorded it.
	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   requestUserID,
		Field:      store.SetRequestsSent,
		Member:     req.PlayerID,
	})
	if err != nil && !errorx.Is(err, errorx.AlreadyExists) {
		return nil, err
	}

	return &model.SendFriendRequestResponse{}, nil
}

// AcceptRequest moves the relationship from Sent to Friends. The
// gating transition is the acceptor's friends-set addition; the mirror
// addition and the pending-request cleanup are completions of a fact
// already decided.
func (d *friendDomain) AcceptRequest(
	ctx context.Context, req *model.AcceptFriendRequestRequest,
) (*model.AcceptFriendRequestResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PlayerID == "" || req.PlayerID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Invalid target player")
	}

	acceptor, err := d.playerStateRepo.Get(ctx, requestUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get acceptor state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	if !acceptor.HasReceivedRequestFrom(req.PlayerID) {
		return nil, errorx.New(errorx.NotFound, "No pending request from this player")
	}

	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   requestUserID,
		Field:      store.SetFriends,
		Member:     req.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	// Keep friendship symmetric: the other side must hold the same
	// fact. A duplicate outcome means a concurrent accept got there
	// first, which is fine.
	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   req.PlayerID,
		Field:      store.SetFriends,
		Member:     requestUserID,
	})
	if err != nil && !errorx.Is(err, errorx.AlreadyExists) {
		return nil, err
	}

	// Best-effort cleanup of the pending request on both sides. These
	// removals never gate side effects; a player id must not stay in
	// both friends and a pending set.
	transition.RemoveQuietly(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   requestUserID,
		Field:      store.SetRequestsReceived,
		Member:     req.PlayerID,
	})
	transition.RemoveQuietly(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   req.PlayerID,
		Field:      store.SetRequestsSent,
		Member:     requestUserID,
	})

	err = d.activityRepo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		PlayerID:    requestUserID,
		Kind:        entity.ActivityFriendAccepted,
		Description: "Became friends",
		Metadata:    entity.Map{"friend_id": req.PlayerID},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create friend activity: %v", err)
	}

	// Both sides gained a friend, so both may have become eligible for
	// friend-count achievements.
	unlocked, err := d.evaluator.Evaluate(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot evaluate achievements: %v", err)
		unlocked = nil
	}

	if _, err := d.evaluator.Evaluate(ctx, req.PlayerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot evaluate counterpart achievements: %v", err)
	}

	common.InvalidateDerived(ctx, d.redisClient, requestUserID)
	common.InvalidateDerived(ctx, d.redisClient, req.PlayerID)

	resp := &model.AcceptFriendRequestResponse{
		UnlockedAchievements: []model.UnlockedAchievement{},
	}

	for _, u := range unlocked {
		resp.UnlockedAchievements = append(resp.UnlockedAchievements, model.UnlockedAchievement{
			ID:        u.Achievement.ID,
			Name:      u.Achievement.Name,
			XPAwarded: u.ActualXP,
		})
	}

	return resp, nil
}

// RejectRequest moves the relationship from Sent back to None.
func (d *friendDomain) RejectRequest(
	ctx context.Context, req *model.RejectFriendRequestRequest,
) (*model.RejectFriendRequestResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PlayerID == "" || req.PlayerID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Invalid target player")
	}

	_, err := transition.Remove(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   requestUserID,
		Field:      store.SetRequestsReceived,
		Member:     req.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	transition.RemoveQuietly(ctx, d.store, transition.Transition{
		Collection: store.CollectionPlayers,
		EntityID:   req.PlayerID,
		Field:      store.SetRequestsSent,
		Member:     requestUserID,
	})

	return &model.RejectFriendRequestResponse{}, nil
}

func (d *friendDomain) GetFriends(
	ctx context.Context, req *model.GetFriendsRequest,
) (*model.GetFriendsResponse, error) {
	state, err := d.playerStateRepo.Get(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	return &model.GetFriendsResponse{
		FriendIDs:       state.Friends,
		PendingSent:     state.RequestsSent,
		PendingReceived: state.RequestsReceived,
	}, nil
}
