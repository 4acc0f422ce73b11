package domain

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/domain/achievement"
	"github.com/learnverse/backend/internal/domain/progression"
	"github.com/learnverse/backend/internal/domain/transition"
	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
	GetList(context.Context, *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	activityRepo repository.ActivityRepository
	store        store.AtomicStore
	engine       *progression.Engine
	evaluator    *achievement.Evaluator
	redisClient  xredis.Client
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	activityRepo repository.ActivityRepository,
	st store.AtomicStore,
	engine *progression.Engine,
	evaluator *achievement.Evaluator,
	redisClient xredis.Client,
) *questDomain {
	return &questDomain{
		questRepo:    questRepo,
		activityRepo: activityRepo,
		store:        st,
		engine:       engine,
		evaluator:    evaluator,
		redisClient:  redisClient,
	}
}

type questCompletedMetadata struct {
	QuestID string   `structs:"quest_id"`
	XP      int64    `structs:"xp"`
	Badges  []string `structs:"badges"`
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	if req.QuestID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty quest id")
	}

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if !quest.IsActive {
		return nil, errorx.New(errorx.Unavailable, "Only allow to complete active quests")
	}

	if quest.IsExpired(time.Now()) {
		return nil, errorx.New(errorx.Unavailable, "This quest has expired")
	}

	err = store.EnsureDocument(ctx, d.store, store.CollectionQuests, quest.ID, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure quest document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionQuests,
		EntityID:   quest.ID,
		Field:      store.SetCompletedBy,
		Member:     requestUserID,
	})
	if err != nil {
		return nil, err
	}

	_, err = d.store.Increment(
		ctx, store.CollectionPlayers, requestUserID, store.FieldQuestsCompleted, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase quests completed: %v", err)
	}

	// Badge rewards ride on the quest completion; the completion above
	// is the gating transition, so a badge the player already holds is
	// not an error.
	awardedBadges := []string{}
	for _, badgeID := range quest.BadgeRewards {
		_, err := transition.Perform(ctx, d.store, transition.Transition{
			Collection: store.CollectionPlayers,
			EntityID:   requestUserID,
			Field:      store.SetBadges,
			Member:     badgeID,
		})
		if err != nil {
			if !errorx.Is(err, errorx.AlreadyExists) {
				xcontext.Logger(ctx).Warnf("Cannot award badge %s: %v", badgeID, err)
			}

			continue
		}

		awardedBadges = append(awardedBadges, badgeID)
	}

	result, err := d.engine.AwardXP(ctx, requestUserID, quest.XPReward)
	if err != nil {
		return nil, err
	}

	err = d.activityRepo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		PlayerID:    requestUserID,
		Kind:        entity.ActivityQuestCompleted,
		Description: "Completed " + quest.Title,
		Metadata: entity.Map(structs.Map(questCompletedMetadata{
			QuestID: quest.ID,
			XP:      result.ActualXP,
			Badges:  awardedBadges,
		})),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create completion activity: %v", err)
	}

	unlocked, err := d.evaluator.Evaluate(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot evaluate achievements: %v", err)
		unlocked = nil
	}

	common.InvalidateDerived(ctx, d.redisClient, requestUserID)

	resp := &model.CompleteQuestResponse{
		ActualXPAwarded:      result.ActualXP,
		NewLevel:             result.NewLevel,
		LeveledUp:            result.LeveledUp,
		AwardedBadges:        awardedBadges,
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

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetQuestsRequest,
) (*model.GetQuestsResponse, error) {
	offset, limit := common.NormalizePagination(ctx, req.Offset, req.Limit)

	quests, err := d.questRepo.GetList(ctx, repository.GetListQuestFilter{
		ActiveOnly: req.ActiveOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests: %v", err)
		return nil, errorx.Unknown
	}

	clientQuests := []model.Quest{}
	for i := range quests {
		clientQuests = append(clientQuests, model.ConvertQuest(&quests[i]))
	}

	return &model.GetQuestsResponse{Quests: clientQuests}, nil
}
