package testutil

import (
	"context"

	"github.com/learnverse/backend/internal/entity"
	"github.com/learnverse/backend/internal/repository"
)

const (
	Player1 = "player1"
	Player2 = "player2"
	Player3 = "player3"

	Course1  = "course1"
	Lesson1  = "course1_lesson1"
	Lesson2  = "course1_lesson2"
	Quest1   = "quest1"
	Team1    = "team1"
	Ach100XP = "achievement_100xp"
	AchChain = "achievement_chain"
)

func InsertCourses(ctx context.Context) {
	courseRepo := repository.NewCourseRepository()
	lessonRepo := repository.NewLessonRepository()

	err := courseRepo.Create(ctx, &entity.Course{
		Base:        entity.Base{ID: Course1},
		Title:       "Intro to Go",
		Description: "The basics",
	})
	if err != nil {
		panic(err)
	}

	err = lessonRepo.Create(ctx, &entity.Lesson{
		Base:     entity.Base{ID: Lesson1},
		CourseID: Course1,
		Title:    "Hello world",
		Position: 1,
		XPReward: 100,
	})
	if err != nil {
		panic(err)
	}

	err = lessonRepo.Create(ctx, &entity.Lesson{
		Base:     entity.Base{ID: Lesson2},
		CourseID: Course1,
		Title:    "Variables",
		Position: 2,
		XPReward: 50,
	})
	if err != nil {
		panic(err)
	}
}

func InsertQuests(ctx context.Context) {
	questRepo := repository.NewQuestRepository()

	err := questRepo.Create(ctx, &entity.Quest{
		Base:         entity.Base{ID: Quest1},
		Title:        "First steps",
		Description:  "Complete your first lesson",
		XPReward:     200,
		BadgeRewards: entity.Array[string]{"badge_first_steps"},
		IsActive:     true,
	})
	if err != nil {
		panic(err)
	}
}

func InsertTeams(ctx context.Context) {
	teamRepo := repository.NewTeamRepository()

	err := teamRepo.Create(ctx, &entity.Team{
		Base:       entity.Base{ID: Team1},
		Name:       "Gophers",
		LeaderID:   Player1,
		MaxMembers: 3,
	})
	if err != nil {
		panic(err)
	}
}

func InsertAchievements(ctx context.Context) {
	achievementRepo := repository.NewAchievementRepository()

	err := achievementRepo.Create(ctx, &entity.Achievement{
		Base:             entity.Base{ID: Ach100XP},
		Name:             "Centurion",
		Description:      "Earn 100 XP",
		XPReward:         50,
		RequirementKind:  entity.RequirementXP,
		RequirementValue: 100,
	})
	if err != nil {
		panic(err)
	}
}

// InsertPlayers seeds player documents in the store.
func InsertPlayers(ctx context.Context, playerStateRepo repository.PlayerStateRepository) {
	for _, p := range []string{Player1, Player2, Player3} {
		if err := playerStateRepo.Create(ctx, p, "Player "+p); err != nil {
			panic(err)
		}
	}
}
