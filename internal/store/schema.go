package store

// Collections of the platform's document store.
const (
	CollectionPlayers = "players"
	CollectionCourses = "courses"
	CollectionLessons = "lessons"
	CollectionQuests  = "quests"
	CollectionTeams   = "teams"
)

// Scalar fields.
const (
	FieldXP            = "xp"
	FieldLevel         = "level"
	FieldStreak        = "streak"
	FieldTeamID        = "team_id"
	FieldName          = "name"
	FieldLastActiveDay = "last_active_day"

	// Bookkeeping counters maintained with Increment. They never carry
	// cross-field invariants, unlike xp/level.
	FieldLessonsCompleted = "lessons_completed"
	FieldQuestsCompleted  = "quests_completed"
)

// Set fields. Members are canonical string ids, never serialized
// objects, so membership checks cannot fall into identity-comparison
// bugs.
const (
	SetAchievements     = "achievements"
	SetBadges           = "badges"
	SetFriends          = "friends"
	SetRequestsSent     = "friend_requests_sent"
	SetRequestsReceived = "friend_requests_received"
	SetEnrolledStudents = "enrolled_students"
	SetCompletedBy      = "completed_by"
	SetMembers          = "members"
)

// Schema names the set fields of each collection. Implementations need
// it to assemble full snapshots, including empty sets.
type Schema map[string][]string

func DefaultSchema() Schema {
	return Schema{
		CollectionPlayers: {
			SetAchievements,
			SetBadges,
			SetFriends,
			SetRequestsSent,
			SetRequestsReceived,
		},
		CollectionCourses: {SetEnrolledStudents},
		CollectionLessons: {SetCompletedBy},
		CollectionQuests:  {SetCompletedBy},
		CollectionTeams:   {SetMembers},
	}
}
