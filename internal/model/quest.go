package model

type Quest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	XPReward     int64    `json:"xp_reward"`
	BadgeRewards []string `json:"badge_rewards"`
	IsActive     bool     `json:"is_active"`
	ExpiresAt    string   `json:"expires_at,omitempty"`
}

type CompleteQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type CompleteQuestResponse struct {
	ActualXPAwarded      int64                 `json:"actual_xp_awarded"`
	NewLevel             int64                 `json:"new_level"`
	LeveledUp            bool                  `json:"leveled_up"`
	AwardedBadges        []string              `json:"awarded_badges"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

type GetQuestsRequest struct {
	ActiveOnly bool `json:"active_only"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
}

type GetQuestsResponse struct {
	Quests []Quest `json:"quests"`
}
