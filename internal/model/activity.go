package model

type Activity struct {
	ID          string         `json:"id"`
	PlayerID    string         `json:"player_id"`
	Kind        string         `json:"kind"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   string         `json:"created_at"`
}

type GetActivitiesRequest struct {
	PlayerID string `json:"player_id"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}
