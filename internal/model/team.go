package model

type JoinTeamRequest struct {
	TeamID string `json:"team_id"`
}

type JoinTeamResponse struct{}

type GetTeamMembersRequest struct {
	TeamID string `json:"team_id"`
}

type GetTeamMembersResponse struct {
	MemberIDs  []string `json:"member_ids"`
	MaxMembers int      `json:"max_members"`
}
