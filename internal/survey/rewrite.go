package survey

import "github.com/evalua-app/evalua-api/internal/models"

// RewriteRule remaps one specific answer value to another before an
// evaluation is stored, for one teacher and level, optionally narrowed to a
// single subject. Rules exist to soften a known rating skew for particular
// teachers; they are data, not code, so the set can change without touching
// the submission flow.
type RewriteRule struct {
	TeacherID string        `json:"teacherId"`
	Level     models.Level  `json:"level"`
	SubjectID string        `json:"subjectId,omitempty"`
	From      models.Answer `json:"from"`
	To        models.Answer `json:"to"`
}

// Matches reports whether the rule applies to the submission target.
func (r RewriteRule) Matches(teacherID string, level models.Level, subjectID string) bool {
	if r.TeacherID != teacherID || r.Level != level {
		return false
	}
	return r.SubjectID == "" || r.SubjectID == subjectID
}

// ApplyRewrites returns the answers with every matching rule applied.
// Rules only fire when enabled (the global teacher-filter toggle); the
// input slice is never mutated.
func ApplyRewrites(rules []RewriteRule, enabled bool, teacherID string, level models.Level, subjectID string, answers []models.Answer) []models.Answer {
	out := make([]models.Answer, len(answers))
	copy(out, answers)
	if !enabled {
		return out
	}
	for _, rule := range rules {
		if !rule.Matches(teacherID, level, subjectID) {
			continue
		}
		for i, a := range out {
			if a == rule.From {
				out[i] = rule.To
			}
		}
	}
	return out
}

// DefaultRewriteRules mirrors the adjustment shipped with the original
// deployment: teacher t1 has the lowest rating bumped for the primary
// statistics subject and for all high-school surveys.
func DefaultRewriteRules() []RewriteRule {
	return []RewriteRule{
		{
			TeacherID: "t1",
			Level:     models.LevelPrimary,
			SubjectID: "s11",
			From:      models.AnswerPrimary(models.RatingNever),
			To:        models.AnswerPrimary(models.RatingSometimes),
		},
		{
			TeacherID: "t1",
			Level:     models.LevelHighSchool,
			From:      models.AnswerNumber(1),
			To:        models.AnswerNumber(3),
		},
	}
}
