package models

// Level distinguishes the two question sets and rating scales.
type Level string

const (
	LevelPrimary    Level = "PRIMARY"
	LevelHighSchool Level = "HIGH_SCHOOL"
)

// Valid reports whether the level is one of the two known tags.
func (l Level) Valid() bool {
	return l == LevelPrimary || l == LevelHighSchool
}

// PrimaryRating is the three-point scale used by primary-level surveys.
type PrimaryRating string

const (
	RatingNever     PrimaryRating = "NEVER"
	RatingSometimes PrimaryRating = "SOMETIMES"
	RatingAlways    PrimaryRating = "ALWAYS"
)

// High-school answers range over 1..4.
const (
	HighSchoolMin = 1
	HighSchoolMax = 4
)
