package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/domain/transition"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
)

type TeamDomain interface {
	Join(context.Context, *model.JoinTeamRequest) (*model.JoinTeamResponse, error)
	GetMembers(context.Context, *model.GetTeamMembersRequest) (*model.GetTeamMembersResponse, error)
}

type teamDomain struct {
	teamRepo        repository.TeamRepository
	playerStateRepo repository.PlayerStateRepository
	activityRepo    repository.ActivityRepository
	store           store.AtomicStore
	redisClient     xredis.Client
}

func NewTeamDomain(
	teamRepo repository.TeamRepository,
	playerStateRepo repository.PlayerStateRepository,
	activityRepo repository.ActivityRepository,
	st store.AtomicStore,
	redisClient xredis.Client,
) *teamDomain {
	return &teamDomain{
		teamRepo:        teamRepo,
		playerStateRepo: playerStateRepo,
		activityRepo:    activityRepo,
		store:           st,
		redisClient:     redisClient,
	}
}

// Join admits the player into the team's member set under the team's
// capacity. The member-set addition is the gating transition; the
// player's team_id field is a mirror written only after admission.
func (d *teamDomain) Join(
	ctx context.Context, req *model.JoinTeamRequest,
) (*model.JoinTeamResponse, error) {
	if req.TeamID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty team id")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	state, err := d.playerStateRepo.Get(ctx, requestUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player state: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	if state.HasTeam() {
		if state.TeamID == req.TeamID {
			return nil, errorx.New(errorx.AlreadyExists, "Already a member of this team")
		}

		return nil, errorx.New(errorx.Unavailable, "Already a member of another team")
	}

	team, err := d.teamRepo.GetByID(ctx, req.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found team")
	}

	err = store.EnsureDocument(ctx, d.store, store.CollectionTeams, team.ID, map[string]string{
		store.FieldName: team.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure team document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	_, err = transition.PerformBounded(ctx, d.store, transition.Transition{
		Collection: store.CollectionTeams,
		EntityID:   team.ID,
		Field:      store.SetMembers,
		Member:     requestUserID,
	}, team.MaxMembers)
	if err != nil {
		return nil, err
	}

	err = d.store.SetField(ctx, store.CollectionPlayers, requestUserID,
		store.FieldTeamID, team.ID)
	if err != nil {
		// The membership fact is already established; the mirror field
		// is repaired on the next join attempt or profile rebuild.
		xcontext.Logger(ctx).Errorf("Cannot set team id of player: %v", err)
	}

	err = d.activityRepo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		PlayerID:    requestUserID,
		Kind:        entity.ActivityTeamJoined,
		Description: "Joined team " + team.Name,
		Metadata:    entity.Map{"team_id": team.ID},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create team activity: %v", err)
	}

	common.InvalidateDerived(ctx, d.redisClient, requestUserID)

	return &model.JoinTeamResponse{}, nil
}

func (d *teamDomain) GetMembers(
	ctx context.Context, req *model.GetTeamMembersRequest,
) (*model.GetTeamMembersResponse, error) {
	if req.TeamID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty team id")
	}

	team, err := d.teamRepo.GetByID(ctx, req.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found team")
	}

	snapshot, err := d.store.Get(ctx, store.CollectionTeams, team.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The team exists in the catalog but nobody has joined yet,
			// so no document has been created in the store.
			return &model.GetTeamMembersResponse{
				MemberIDs:  []string{},
				MaxMembers: team.MaxMembers,
			}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get team document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	return &model.GetTeamMembersResponse{
		MemberIDs:  snapshot.Members(store.SetMembers),
		MaxMembers: team.MaxMembers,
	}, nil
}
