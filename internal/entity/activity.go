package entity

import (
	"github.com/learnverse/backend/pkg/enum"
)

type ActivityKind string

var (
	ActivityCourseEnrolled      = enum.New(ActivityKind("course_enrolled"))
	ActivityLessonCompleted     = enum.New(ActivityKind("lesson_completed"))
	ActivityQuestCompleted      = enum.New(ActivityKind("quest_completed"))
	ActivityAchievementUnlocked = enum.New(ActivityKind("achievement_unlocked"))
	ActivityLevelUp             = enum.New(ActivityKind("level_up"))
	ActivityFriendAccepted      = enum.New(ActivityKind("friend_accepted"))
	ActivityTeamJoined          = enum.New(ActivityKind("team_joined"))
)

// Activity records one completed state transition. Rows are created
// only after the transition protocol confirms the mutation happened
// and are never updated or deleted; the metadata carries the actual
// post-multiplier XP, not the base amount.
type Activity struct {
	Base

	PlayerID    string
	Kind        ActivityKind
	Description string
	Metadata    Map `gorm:"type:text"`
}
