package stats

import (
	"strconv"
	"time"

	"github.com/evalua-app/evalua-api/internal/models"
)

// AnswerRow is one (evaluation, question) cell in flat form. Every
// aggregate in this package consumes AnswerRows, so live database history
// and a re-imported comprehensive export feed the exact same math.
//
// TeacherKey and GradeKey are the grouping identities: the teacher id and
// the decimal grade id when flattening live evaluations, the display names
// when the rows come from a file that never carried ids. Display names can
// collide across grades, ids cannot, so filtering always goes through the
// keys. The two modes must agree numerically, not on keys.
type AnswerRow struct {
	EvaluationID  string
	Student       string
	GradeKey      string
	GradeName     string
	TeacherKey    string
	TeacherName   string
	SubjectName   string
	Level         models.Level
	Timestamp     time.Time
	QuestionIndex int
	QuestionText  string
	Answer        models.Answer
}

// Flatten expands evaluations into AnswerRows keyed by teacher id.
// Evaluations whose grade, teacher or subject no longer exists are dropped
// whole; that mirrors the filtering the comprehensive export applies, so a
// flatten and a re-parsed export describe the same population.
func Flatten(evaluations []models.Evaluation, grades []models.Grade, teachers []models.Teacher, subjects []models.Subject, questionsByLevel map[models.Level][]string) []AnswerRow {
	gradeByID := make(map[int]models.Grade, len(grades))
	for _, g := range grades {
		gradeByID[g.ID] = g
	}
	teacherByID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}
	subjectByID := make(map[string]models.Subject, len(subjects))
	for _, s := range subjects {
		subjectByID[s.ID] = s
	}

	var rows []AnswerRow
	for _, ev := range evaluations {
		grade, ok := gradeByID[ev.GradeID]
		if !ok {
			continue
		}
		teacher, ok := teacherByID[ev.TeacherID]
		if !ok {
			continue
		}
		subject, ok := subjectByID[ev.SubjectID]
		if !ok {
			continue
		}
		questions := questionsByLevel[grade.Level]
		for i, answer := range ev.Answers {
			text := "N/A"
			if i < len(questions) {
				text = questions[i]
			}
			rows = append(rows, AnswerRow{
				EvaluationID:  ev.ID,
				Student:       ev.StudentName,
				GradeKey:      strconv.Itoa(grade.ID),
				GradeName:     grade.Name,
				TeacherKey:    teacher.ID,
				TeacherName:   teacher.Name,
				SubjectName:   subject.Name,
				Level:         grade.Level,
				Timestamp:     ev.Timestamp,
				QuestionIndex: i,
				QuestionText:  text,
				Answer:        answer,
			})
		}
	}
	return rows
}

// QuestionsFromRows reconstructs the per-level question lists out of a row
// set, for aggregating imported files that carry no question catalog. Gaps
// left by missing indices render as "N/A".
func QuestionsFromRows(rows []AnswerRow) map[models.Level][]string {
	out := make(map[models.Level][]string)
	for _, row := range rows {
		questions := out[row.Level]
		for len(questions) <= row.QuestionIndex {
			questions = append(questions, "N/A")
		}
		if row.QuestionText != "" {
			questions[row.QuestionIndex] = row.QuestionText
		}
		out[row.Level] = questions
	}
	return out
}
