package stats

import (
	"math"
	"strconv"

	"github.com/evalua-app/evalua-api/internal/models"
)

// Spanish labels shown for primary-scale ratings, on screen and in exports.
const (
	LabelNever     = "Ninguna vez"
	LabelSometimes = "A veces"
	LabelAlways    = "Siempre"
)

// Score converts one answer to its numeric value for the level's scale.
// Primary: NEVER=1, SOMETIMES=2, ALWAYS=3. High school: the 1..4 value
// as-is. Anything else scores 0, which every average excludes from its
// denominator; 0 is "no usable response", never a grade.
func Score(level models.Level, a models.Answer) int {
	if level == models.LevelPrimary {
		switch a.Rating {
		case models.RatingNever:
			return 1
		case models.RatingSometimes:
			return 2
		case models.RatingAlways:
			return 3
		}
		return 0
	}
	if a.Value >= models.HighSchoolMin && a.Value <= models.HighSchoolMax {
		return a.Value
	}
	return 0
}

// Label renders one answer the way report cells show it: the Spanish label
// for primary ratings ("-" when absent or unknown), the raw number for high
// school (empty when absent).
func Label(level models.Level, a models.Answer) string {
	if level == models.LevelPrimary {
		switch a.Rating {
		case models.RatingNever:
			return LabelNever
		case models.RatingSometimes:
			return LabelSometimes
		case models.RatingAlways:
			return LabelAlways
		}
		return "-"
	}
	if a.Value != 0 {
		return strconv.Itoa(a.Value)
	}
	if a.Rating != "" {
		return string(a.Rating)
	}
	return ""
}

// ParseAnswerLabel is the inverse of Label, used when re-reading exported
// files. Numbers become high-school answers, known Spanish labels become
// primary ratings, "-" and the empty cell mean no response, and any other
// string is kept verbatim so a later export reproduces the cell.
func ParseAnswerLabel(s string) models.Answer {
	if s == "" || s == "-" {
		return models.Answer{}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return models.AnswerNumber(n)
	}
	switch s {
	case LabelNever:
		return models.AnswerPrimary(models.RatingNever)
	case LabelSometimes:
		return models.AnswerPrimary(models.RatingSometimes)
	case LabelAlways:
		return models.AnswerPrimary(models.RatingAlways)
	}
	return models.AnswerPrimary(models.PrimaryRating(s))
}

// RatingOption is one selectable answer with its display label.
type RatingOption struct {
	Answer models.Answer `json:"answer"`
	Label  string        `json:"label"`
}

// RatingOptions lists the answer choices a survey at the level offers, in
// ascending score order.
func RatingOptions(level models.Level) []RatingOption {
	if level == models.LevelPrimary {
		return []RatingOption{
			{Answer: models.AnswerPrimary(models.RatingNever), Label: LabelNever},
			{Answer: models.AnswerPrimary(models.RatingSometimes), Label: LabelSometimes},
			{Answer: models.AnswerPrimary(models.RatingAlways), Label: LabelAlways},
		}
	}
	return []RatingOption{
		{Answer: models.AnswerNumber(1), Label: "Ninguna de las veces"},
		{Answer: models.AnswerNumber(2), Label: "Muy pocas veces"},
		{Answer: models.AnswerNumber(3), Label: "Casi siempre"},
		{Answer: models.AnswerNumber(4), Label: "Siempre"},
	}
}

// Round2 rounds to two decimals. Stored averages are rounded once, here,
// and compared with a tolerance everywhere downstream.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
