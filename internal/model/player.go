package model

type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

type RegisterPlayerResponse struct{}

type GetPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

type GetPlayerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	XP     int64  `json:"xp"`
	Level  int64  `json:"level"`
	Streak int64  `json:"streak"`
	TeamID string `json:"team_id,omitempty"`

	ProgressXP int64   `json:"progress_xp"`
	NeededXP   int64   `json:"needed_xp"`
	Multiplier float64 `json:"multiplier"`

	FriendCount      int   `json:"friend_count"`
	AchievementCount int   `json:"achievement_count"`
	LessonsCompleted int64 `json:"lessons_completed"`
	QuestsCompleted  int64 `json:"quests_completed"`
}

type TouchStreakRequest struct{}

type TouchStreakResponse struct {
	Streak int64 `json:"streak"`
}
