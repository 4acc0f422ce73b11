package entity

type Team struct {
	Base

	Name     string
	LeaderID string

	// MaxMembers bounds the members set. Joins beyond it are rejected
	// by the bounded transition protocol.
	MaxMembers int
}
