package main

import (
	"context"
	"os"
	"strconv"

	"github.com/learnverse/backend/config"
	"github.com/learnverse/backend/internal/domain"
	"github.com/learnverse/backend/internal/domain/achievement"
	"github.com/learnverse/backend/internal/domain/progression"
	"github.com/learnverse/backend/internal/repository"
	"github.com/learnverse/backend/internal/store"
	"github.com/learnverse/backend/pkg/logger"
	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/learnverse/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	ctx     context.Context
	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client
	store       store.AtomicStore

	courseRepo      repository.CourseRepository
	lessonRepo      repository.LessonRepository
	questRepo       repository.QuestRepository
	achievementRepo repository.AchievementRepository
	teamRepo        repository.TeamRepository
	activityRepo    repository.ActivityRepository
	playerStateRepo repository.PlayerStateRepository
	leaderboardRepo repository.LeaderboardRepository

	engine    *progression.Engine
	evaluator *achievement.Evaluator

	playerDomain      domain.PlayerDomain
	courseDomain      domain.CourseDomain
	questDomain       domain.QuestDomain
	friendDomain      domain.FriendDomain
	teamDomain        domain.TeamDomain
	achievementDomain domain.AchievementDomain
	statisticDomain   domain.StatisticDomain
	activityDomain    domain.ActivityDomain
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "learnverse"),
			User:     getEnv("MYSQL_USER", "learnverse"),
			Password: getEnv("MYSQL_PASSWORD", "learnverse"),
		},
		ApiServer: config.APIServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 20),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Store: config.StoreConfigs{
			Driver:    getEnv("STORE_DRIVER", "redis"),
			KeyPrefix: getEnv("STORE_KEY_PREFIX", "learnverse"),
		},
		Progression: config.ProgressionConfigs{
			StreakBonusPerDay: 0.01,
			StreakBonusMax:    0.5,
			TeamBonus:         0.1,
		},
		Achievement: config.AchievementConfigs{
			MaxCascadeRounds: getIntEnv("ACHIEVEMENT_MAX_CASCADE_ROUNDS", 5),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
}

func (s *srv) loadStore() {
	switch s.configs.Store.Driver {
	case "memory":
		s.store = store.NewMemoryStore(store.DefaultSchema())
	default:
		st, err := store.NewRedisStore(s.ctx, store.DefaultSchema())
		if err != nil {
			panic(err)
		}

		s.store = st
	}
}

func (s *srv) loadRepos() {
	s.courseRepo = repository.NewCourseRepository()
	s.lessonRepo = repository.NewLessonRepository()
	s.questRepo = repository.NewQuestRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.teamRepo = repository.NewTeamRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.playerStateRepo = repository.NewPlayerStateRepository(s.store)
	s.leaderboardRepo = repository.NewLeaderboardRepository(s.redisClient)
}

func (s *srv) loadDomains() {
	s.engine = progression.NewEngine(s.store, s.activityRepo, s.leaderboardRepo)
	s.evaluator = achievement.NewEvaluator(s.store, s.achievementRepo, s.activityRepo, s.engine)

	s.playerDomain = domain.NewPlayerDomain(s.playerStateRepo, s.engine, s.redisClient)
	s.courseDomain = domain.NewCourseDomain(
		s.courseRepo, s.lessonRepo, s.activityRepo, s.store, s.engine, s.evaluator, s.redisClient)
	s.questDomain = domain.NewQuestDomain(
		s.questRepo, s.activityRepo, s.store, s.engine, s.evaluator, s.redisClient)
	s.friendDomain = domain.NewFriendDomain(
		s.playerStateRepo, s.activityRepo, s.store, s.evaluator, s.redisClient)
	s.teamDomain = domain.NewTeamDomain(
		s.teamRepo, s.playerStateRepo, s.activityRepo, s.store, s.redisClient)
	s.achievementDomain = domain.NewAchievementDomain(
		s.achievementRepo, s.playerStateRepo, s.evaluator, s.redisClient)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboardRepo)
	s.activityDomain = domain.NewActivityDomain(s.activityRepo)
}
