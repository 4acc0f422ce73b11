package model

type Achievement struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	IconURL          string `json:"icon_url"`
	XPReward         int64  `json:"xp_reward"`
	RequirementKind  string `json:"requirement_kind"`
	RequirementValue int64  `json:"requirement_value"`
}

type UnlockedAchievement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	XPAwarded int64  `json:"xp_awarded"`
}

type CheckAchievementsRequest struct{}

type CheckAchievementsResponse struct {
	Unlocked []UnlockedAchievement `json:"unlocked"`
}

type GetMyAchievementsRequest struct{}

type GetMyAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}
