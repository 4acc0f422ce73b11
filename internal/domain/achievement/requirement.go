package achievement

import (
	"fmt"

	"github.com/learnverse/backend/internal/entity"
)

// Eligible evaluates an achievement's requirement against a player
// state. Callers must pass freshly read state, not a snapshot taken
// before earlier awards in the same request, or cascades will be
// missed.
func Eligible(a *entity.Achievement, state *entity.PlayerState) (bool, error) {
	switch a.RequirementKind {
	case entity.RequirementXP:
		return state.XP >= a.RequirementValue, nil
	case entity.RequirementLevel:
		return state.Level >= a.RequirementValue, nil
	case entity.RequirementStreak:
		return state.Streak >= a.RequirementValue, nil
	case entity.RequirementFriendCount:
		return int64(len(state.Friends)) >= a.RequirementValue, nil
	case entity.RequirementLessonCount:
		return state.LessonsCompleted >= a.RequirementValue, nil
	case entity.RequirementQuestCount:
		return state.QuestsCompleted >= a.RequirementValue, nil
	case entity.RequirementAchievementCount:
		return int64(len(state.Achievements)) >= a.RequirementValue, nil
	default:
		return false, fmt.Errorf("unknown requirement kind %s", a.RequirementKind)
	}
}
