package entity

type Course struct {
	Base

	Title       string
	Description string
	CreatedBy   string
}

type Lesson struct {
	Base

	CourseID string
	Course   Course `gorm:"foreignKey:CourseID"`

	Title    string
	Position int
	XPReward int64
}
