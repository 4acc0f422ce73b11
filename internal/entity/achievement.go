package entity

import (
	"github.com/learnverse/backend/pkg/enum"
)

// RequirementKind is the closed set of achievement requirement
// variants. Eligibility is dispatched by switching over this enum, so
// an unknown kind is a configuration error, never a silent pass.
type RequirementKind string

var (
	RequirementXP               = enum.New(RequirementKind("xp"))
	RequirementLevel            = enum.New(RequirementKind("level"))
	RequirementStreak           = enum.New(RequirementKind("streak"))
	RequirementFriendCount      = enum.New(RequirementKind("friend_count"))
	RequirementLessonCount      = enum.New(RequirementKind("lesson_count"))
	RequirementQuestCount       = enum.New(RequirementKind("quest_count"))
	RequirementAchievementCount = enum.New(RequirementKind("achievement_count"))
)

type Achievement struct {
	Base

	Name        string
	Description string
	IconURL     string

	XPReward int64

	RequirementKind  RequirementKind
	RequirementValue int64
}
