package models

// Question belongs to exactly one level's sequence. Order is 1-based and
// kept dense: every edit replaces the whole level's list and renumbers it.
type Question struct {
	ID    int    `db:"id" json:"id"`
	Level Level  `db:"level" json:"level"`
	Order int    `db:"question_order" json:"order"`
	Text  string `db:"text" json:"text"`
}
