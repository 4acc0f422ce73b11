package config

import (
	"fmt"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	ApiServer   APIServerConfigs
	Redis       RedisConfigs
	Store       StoreConfigs
	Progression ProgressionConfigs
	Achievement AchievementConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host string
	Port string

	DefaultLimit int
	MaxLimit     int
}

type RedisConfigs struct {
	Addr string
}

type StoreConfigs struct {
	// Driver selects the atomic store backend, either "redis" or
	// "memory".
	Driver string

	// KeyPrefix namespaces every store key so multiple environments can
	// share one redis instance.
	KeyPrefix string
}

type ProgressionConfigs struct {
	// StreakBonusPerDay is the multiplier gained per consecutive active
	// day, and StreakBonusMax caps the total streak contribution.
	StreakBonusPerDay float64
	StreakBonusMax    float64

	// TeamBonus is a flat multiplier bonus for players with a team.
	TeamBonus float64
}

type AchievementConfigs struct {
	// MaxCascadeRounds bounds the unlock re-evaluation loop.
	MaxCascadeRounds int
}
