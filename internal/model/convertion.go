package model

import (
	"time"

	"github.com/learnverse/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertCourse(course *entity.Course, enrolledCount int) Course {
	if course == nil {
		return Course{}
	}

	return Course{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		EnrolledCount: enrolledCount,
	}
}

func ConvertLesson(lesson *entity.Lesson) Lesson {
	if lesson == nil {
		return Lesson{}
	}

	return Lesson{
		ID:       lesson.ID,
		CourseID: lesson.CourseID,
		Title:    lesson.Title,
		Position: lesson.Position,
		XPReward: lesson.XPReward,
	}
}

func ConvertQuest(quest *entity.Quest) Quest {
	if quest == nil {
		return Quest{}
	}

	expiresAt := ""
	if quest.ExpiresAt.Valid {
		expiresAt = quest.ExpiresAt.Time.Format(DefaultTimeLayout)
	}

	return Quest{
		ID:           quest.ID,
		Title:        quest.Title,
		Description:  quest.Description,
		XPReward:     quest.XPReward,
		BadgeRewards: quest.BadgeRewards,
		IsActive:     quest.IsActive,
		ExpiresAt:    expiresAt,
	}
}

func ConvertAchievement(achievement *entity.Achievement) Achievement {
	if achievement == nil {
		return Achievement{}
	}

	return Achievement{
		ID:               achievement.ID,
		Name:             achievement.Name,
		Description:      achievement.Description,
		IconURL:          achievement.IconURL,
		XPReward:         achievement.XPReward,
		RequirementKind:  string(achievement.RequirementKind),
		RequirementValue: achievement.RequirementValue,
	}
}

func ConvertActivity(activity *entity.Activity) Activity {
	if activity == nil {
		return Activity{}
	}

	return Activity{
		ID:          activity.ID,
		PlayerID:    activity.PlayerID,
		Kind:        string(activity.Kind),
		Description: activity.Description,
		Metadata:    activity.Metadata,
		CreatedAt:   activity.CreatedAt.Format(DefaultTimeLayout),
	}
}
