package entity

import (
	"github.com/learnverse/backend/internal/store"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
)

// PlayerState is a typed view over a player document snapshot. It is a
// read model only; every mutation goes back through the atomic store.
type PlayerState struct {
	ID            string `mapstructure:"id"`
	Name          string `mapstructure:"name"`
	XP            int64  `mapstructure:"xp"`
	Level         int64  `mapstructure:"level"`
	Streak        int64  `mapstructure:"streak"`
	TeamID        string `mapstructure:"team_id"`
	LastActiveDay string `mapstructure:"last_active_day"`

	LessonsCompleted int64 `mapstructure:"lessons_completed"`
	QuestsCompleted  int64 `mapstructure:"quests_completed"`

	Achievements     []string `mapstructure:"-"`
	Badges           []string `mapstructure:"-"`
	Friends          []string `mapstructure:"-"`
	RequestsSent     []string `mapstructure:"-"`
	RequestsReceived []string `mapstructure:"-"`
}

// PlayerStateFromSnapshot decodes the scalar hash weakly (scalars are
// stored as strings) and copies the set fields.
func PlayerStateFromSnapshot(s *store.Snapshot) (*PlayerState, error) {
	var state PlayerState
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &state,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(s.Fields); err != nil {
		return nil, err
	}

	state.ID = s.ID
	state.Achievements = s.Members(store.SetAchievements)
	state.Badges = s.Members(store.SetBadges)
	state.Friends = s.Members(store.SetFriends)
	state.RequestsSent = s.Members(store.SetRequestsSent)
	state.RequestsReceived = s.Members(store.SetRequestsReceived)

	return &state, nil
}

func (p *PlayerState) HasTeam() bool {
	return p.TeamID != ""
}

func (p *PlayerState) IsFriendOf(playerID string) bool {
	return slices.Contains(p.Friends, playerID)
}

func (p *PlayerState) HasSentRequestTo(playerID string) bool {
	return slices.Contains(p.RequestsSent, playerID)
}

func (p *PlayerState) HasReceivedRequestFrom(playerID string) bool {
	return slices.Contains(p.RequestsReceived, playerID)
}

func (p *PlayerState) HasAchievement(achievementID string) bool {
	return slices.Contains(p.Achievements, achievementID)
}
