package models

import "encoding/json"

// Well-known settings keys.
const (
	SettingGradeLock     = "grade_lock_enabled"
	SettingTeacherFilter = "teacher_filter_enabled"
	SettingRewriteRules  = "answer_rewrite_rules"
)

// Setting is one key/value row; values are arbitrary JSON.
type Setting struct {
	Key   string          `db:"key" json:"key"`
	Value json.RawMessage `db:"value" json:"value"`
}

// Bool interprets the value as a boolean flag, defaulting to false for
// absent or malformed values.
func (s Setting) Bool() bool {
	var v bool
	if err := json.Unmarshal(s.Value, &v); err != nil {
		return false
	}
	return v
}
