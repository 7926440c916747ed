package models

// Subject is a taught discipline. Either IconID (a symbolic id from the
// client's fixed icon set) or IconURL may decorate it; the URL wins when
// both are present.
type Subject struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	IconID  *string `db:"icon_id" json:"iconId,omitempty"`
	IconURL *string `db:"icon_url" json:"iconUrl,omitempty"`
}
