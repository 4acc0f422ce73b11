package domain

import (
	"context"

	"github.com/learnverse/backend/internal/common"
	"github.com/learnverse/backend/internal/model"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/pkg/errorx"
	"github.com/learnverse/backend/pkg/xcontext"
)

type ActivityDomain interface {
	GetList(context.Context, *model.GetActivitiesRequest) (*model.GetActivitiesResponse, error)
}

type activityDomain struct {
	activityRepo repository.ActivityRepository
}

func NewActivityDomain(activityRepo repository.ActivityRepository) *activityDomain {
	return &activityDomain{activityRepo: activityRepo}
}

func (d *activityDomain) GetList(
	ctx context.Context, req *model.GetActivitiesRequest,
) (*model.GetActivitiesResponse, error) {
	playerID := req.PlayerID
	if playerID == "" {
		playerID = xcontext.RequestUserID(ctx)
	}

	offset, limit := common.NormalizePagination(ctx, req.Offset, req.Limit)

	activities, err := d.activityRepo.GetList(ctx, repository.GetListActivityFilter{
		PlayerID: playerID,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activities: %v", err)
		return nil, errorx.Unknown
	}

	clientActivities := []model.Activity{}
	for i := range activities {
		clientActivities = append(clientActivities, model.ConvertActivity(&activities[i]))
	}

	return &model.GetActivitiesResponse{Activities: clientActivities}, nil
}
