package model

type Course struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EnrolledCount int    `json:"enrolled_count"`
}

type Lesson struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	XPReward int64  `json:"xp_reward"`
}

type EnrollCourseRequest struct {
	CourseID string `json:"course_id"`
}

type EnrollCourseResponse struct{}

type CompleteLessonRequest struct {
	LessonID string `json:"lesson_id"`
}

type CompleteLessonResponse struct {
	ActualXPAwarded      int64                 `json:"actual_xp_awarded"`
	NewLevel             int64                 `json:"new_level"`
	LeveledUp            bool                  `json:"leveled_up"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

type GetCoursesRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetCoursesResponse struct {
	Courses []Course `json:"courses"`
}

type GetEnrolledPlayersRequest struct {
	CourseID string `json:"course_id"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetEnrolledPlayersResponse struct {
	PlayerIDs []string `json:"player_ids"`
}
