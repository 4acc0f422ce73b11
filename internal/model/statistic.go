package model

type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Score    int64  `json:"score"`
	Rank     int    `json:"rank"`
}

type GetLeaderboardRequest struct {
	// Scope is "global" or a course id.
	Scope  string `json:"scope"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetRankRequest struct {
	PlayerID string `json:"player_id"`
	Scope    string `json:"scope"`
}

type GetRankResponse struct {
	PlayerID string `json:"player_id"`
	Rank     uint64 `json:"rank"`
}
