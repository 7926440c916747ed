package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// Answer is one recorded response. Exactly one of Rating or Value is set:
// Rating holds the primary-scale tag, Value holds the 1-4 high-school
// number. The zero Answer means the response was missing or unreadable; it
// scores 0 and is excluded from averages, never treated as a zero grade.
type Answer struct {
	Rating PrimaryRating
	Value  int
}

// AnswerPrimary builds a primary-scale answer.
func AnswerPrimary(r PrimaryRating) Answer {
	return Answer{Rating: r}
}

// AnswerNumber builds a high-school answer.
func AnswerNumber(n int) Answer {
	return Answer{Value: n}
}

// IsZero reports whether no response was recorded.
func (a Answer) IsZero() bool {
	return a.Rating == "" && a.Value == 0
}

// MarshalJSON renders the answer in the wire shape used by the evaluations
// table: a bare string for primary ratings, a bare number for high school,
// null when absent.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Rating != "" {
		return json.Marshal(string(a.Rating))
	}
	if a.Value != 0 {
		return json.Marshal(a.Value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts strings, numbers and null. Unknown strings are kept
// verbatim so that a later export reproduces the original cell; they simply
// score 0. Fractional numbers are treated as unreadable and become the zero
// Answer rather than poisoning the whole row.
func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if f == math.Trunc(f) {
			a.Value = int(f)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Rating = PrimaryRating(s)
		return nil
	}

	var null interface{}
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		return nil
	}

	return fmt.Errorf("answer: unsupported value %s", string(data))
}

// AnswerList maps the evaluations.answers JSON column.
type AnswerList []Answer

// Value implements driver.Valuer.
func (l AnswerList) Value() (driver.Value, error) {
	if l == nil {
		l = AnswerList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *AnswerList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("answers: cannot scan %T", src)
	}
}
