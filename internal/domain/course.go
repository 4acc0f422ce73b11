package domain

import (
	"context"
	"errors"

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

type CourseDomain interface {
	Enroll(context.Context, *model.EnrollCourseRequest) (*model.EnrollCourseResponse, error)
	CompleteLesson(context.Context, *model.CompleteLessonRequest) (*model.CompleteLessonResponse, error)
	GetCourses(context.Context, *model.GetCoursesRequest) (*model.GetCoursesResponse, error)
	GetEnrolledPlayers(context.Context, *model.GetEnrolledPlayersRequest) (*model.GetEnrolledPlayersResponse, error)
}

type courseDomain struct {
	courseRepo   repository.CourseRepository
	lessonRepo   repository.LessonRepository
	activityRepo repository.ActivityRepository
	store        store.AtomicStore
	engine       *progression.Engine
	evaluator    *achievement.Evaluator
	redisClient  xredis.Client
}

func NewCourseDomain(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	activityRepo repository.ActivityRepository,
	st store.AtomicStore,
	engine *progression.Engine,
	evaluator *achievement.Evaluator,
	redisClient xredis.Client,
) *courseDomain {
	return &courseDomain{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		activityRepo: activityRepo,
		store:        st,
		engine:       engine,
		evaluator:    evaluator,
		redisClient:  redisClient,
	}
}

type lessonCompletedMetadata struct {
	LessonID string `structs:"lesson_id"`
	CourseID string `structs:"course_id"`
	XP       int64  `structs:"xp"`
}

func (d *courseDomain) Enroll(
	ctx context.Context, req *model.EnrollCourseRequest,
) (*model.EnrollCourseResponse, error) {
	if req.CourseID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty course id")
	}

	course, err := d.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	err = store.EnsureDocument(ctx, d.store, store.CollectionCourses, course.ID, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure course document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionCourses,
		EntityID:   course.ID,
		Field:      store.SetEnrolledStudents,
		Member:     requestUserID,
	})
	if err != nil {
		return nil, err
	}

	err = d.activityRepo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		PlayerID:    requestUserID,
		Kind:        entity.ActivityCourseEnrolled,
		Description: "Enrolled in " + course.Title,
		Metadata:    entity.Map{"course_id": course.ID},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create enroll activity: %v", err)
	}

	common.InvalidateDerived(ctx, d.redisClient, requestUserID, course.ID)

	return &model.EnrollCourseResponse{}, nil
}

func (d *courseDomain) CompleteLesson(
	ctx context.Context, req *model.CompleteLessonRequest,
) (*model.CompleteLessonResponse, error) {
	if req.LessonID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty lesson id")
	}

	lesson, err := d.lessonRepo.GetByID(ctx, req.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found lesson")
		}

		xcontext.Logger(ctx).Errorf("Cannot get lesson: %v", err)
		return nil, errorx.Unknown
	}

	// If the player has not enrolled yet, enroll them automatically.
	// A duplicate outcome here is fine; it only means someone else
	// already recorded the enrollment.
	err = store.EnsureDocument(ctx, d.store, store.CollectionCourses, lesson.CourseID, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure course document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionCourses,
		EntityID:   lesson.CourseID,
		Field:      store.SetEnrolledStudents,
		Member:     requestUserID,
	})
	if err != nil && !errorx.Is(err, errorx.AlreadyExists) {
		return nil, err
	}

	err = store.EnsureDocument(ctx, d.store, store.CollectionLessons, lesson.ID, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure lesson document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	_, err = transition.Perform(ctx, d.store, transition.Transition{
		Collection: store.CollectionLessons,
		EntityID:   lesson.ID,
		Field:      store.SetCompletedBy,
		Member:     requestUserID,
	})
	if err != nil {
		return nil, err
	}

	// The completion is committed from here on; everything below is a
	// gated side effect of this request's transition.
	_, err = d.store.Increment(
		ctx, store.CollectionPlayers, requestUserID, store.FieldLessonsCompleted, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase lessons completed: %v", err)
	}

	result, err := d.engine.AwardXP(ctx, requestUserID, lesson.XPReward, lesson.CourseID)
	if err != nil {
		return nil, err
	}

	err = d.activityRepo.Create(ctx, &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		PlayerID:    requestUserID,
		Kind:        entity.ActivityLessonCompleted,
		Description: "Completed " + lesson.Title,
		Metadata: entity.Map(structs.Map(lessonCompletedMetadata{
			LessonID: lesson.ID,
			CourseID: lesson.CourseID,
			XP:       result.ActualXP,
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

	common.InvalidateDerived(ctx, d.redisClient, requestUserID, lesson.CourseID)

	resp := &model.CompleteLessonResponse{
		ActualXPAwarded:      result.ActualXP,
		NewLevel:             result.NewLevel,
		LeveledUp:            result.LeveledUp,
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

func (d *courseDomain) GetCourses(
	ctx context.Context, req *model.GetCoursesRequest,
) (*model.GetCoursesResponse, error) {
	offset, limit := common.NormalizePagination(ctx, req.Offset, req.Limit)

	courses, err := d.courseRepo.GetList(ctx, repository.GetListCourseFilter{
		Q:      req.Q,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get courses: %v", err)
		return nil, errorx.Unknown
	}

	clientCourses := []model.Course{}
	for i := range courses {
		enrolledCount := 0
		snapshot, err := d.store.Get(ctx, store.CollectionCourses, courses[i].ID)
		if err == nil {
			enrolledCount = snapshot.Card(store.SetEnrolledStudents)
		}

		clientCourses = append(clientCourses, model.ConvertCourse(&courses[i], enrolledCount))
	}

	return &model.GetCoursesResponse{Courses: clientCourses}, nil
}

func (d *courseDomain) GetEnrolledPlayers(
	ctx context.Context, req *model.GetEnrolledPlayersRequest,
) (*model.GetEnrolledPlayersResponse, error) {
	if req.CourseID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty course id")
	}

	snapshot, err := d.store.Get(ctx, store.CollectionCourses, req.CourseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course document: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Store is unavailable")
	}

	offset, limit := common.NormalizePagination(ctx, req.Offset, req.Limit)

	members := snapshot.Members(store.SetEnrolledStudents)
	if offset >= len(members) {
		return &model.GetEnrolledPlayersResponse{PlayerIDs: []string{}}, nil
	}

	end := offset + limit
	if end > len(members) {
		end = len(members)
	}

	return &model.GetEnrolledPlayersResponse{PlayerIDs: members[offset:end]}, nil
}
