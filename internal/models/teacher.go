package models

// Teacher represents an instructor being evaluated. IDs are opaque strings;
// legacy records use prefixed ids like "t1".
type Teacher struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
