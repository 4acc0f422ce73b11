package entity

import (
	"database/sql"
	"time"
)

type Quest struct {
	Base

	Title       string
	Description string

	XPReward     int64
	BadgeRewards Array[string] `gorm:"type:text"`

	IsActive  bool
	ExpiresAt sql.NullTime
}

// IsExpired reports whether the quest can no longer be completed.
func (q *Quest) IsExpired(now time.Time) bool {
	return q.ExpiresAt.Valid && now.After(q.ExpiresAt.Time)
}
