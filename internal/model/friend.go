package model

type SendFriendRequestRequest struct {
	PlayerID string `json:"player_id"`
}

type SendFriendRequestResponse struct{}

type AcceptFriendRequestRequest struct {
	PlayerID string `json:"player_id"`
}

type AcceptFriendRequestResponse struct {
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

type RejectFriendRequestRequest struct {
	PlayerID string `json:"player_id"`
}

type RejectFriendRequestResponse struct{}

type GetFriendsRequest struct{}

type GetFriendsResponse struct {
	FriendIDs       []string `json:"friend_ids"`
	PendingSent     []string `json:"pending_sent"`
	PendingReceived []string `json:"pending_received"`
}
