package stats

import (
	"fmt"

	"github.com/evalua-app/evalua-api/internal/models"
)

// TeacherSummary is one teacher's general standing: the average over every
// scoreable answer the teacher received and how many surveys produced them.
type TeacherSummary struct {
	TeacherKey  string  `json:"teacherKey"`
	TeacherName string  `json:"teacherName"`
	Average     float64 `json:"average"`
	SurveyCount int     `json:"surveyCount"`
}

// GeneralSummaries groups teacher averages by level. The average itself is
// computed over ALL of a teacher's answers regardless of level; a teacher
// evaluated at both levels appears in both lists with the same numbers.
// Survey count is the number of distinct evaluations. Teachers without a
// single survey are absent. Output order follows first appearance in the
// row set.
func GeneralSummaries(rows []AnswerRow) map[models.Level][]TeacherSummary {
	type acc struct {
		name     string
		sum      int
		answered int
		surveys  map[string]struct{}
		levels   map[models.Level]struct{}
	}

	byTeacher := make(map[string]*acc)
	var order []string

	for _, row := range rows {
		a, ok := byTeacher[row.TeacherKey]
		if !ok {
			a = &acc{
				name:    row.TeacherName,
				surveys: make(map[string]struct{}),
				levels:  make(map[models.Level]struct{}),
			}
			byTeacher[row.TeacherKey] = a
			order = append(order, row.TeacherKey)
		}
		a.surveys[row.EvaluationID] = struct{}{}
		a.levels[row.Level] = struct{}{}
		if score := Score(row.Level, row.Answer); score > 0 {
			a.sum += score
			a.answered++
		}
	}

	out := make(map[models.Level][]TeacherSummary)
	for _, key := range order {
		a := byTeacher[key]
		if len(a.surveys) == 0 {
			continue
		}
		average := 0.0
		if a.answered > 0 {
			average = Round2(float64(a.sum) / float64(a.answered))
		}
		summary := TeacherSummary{
			TeacherKey:  key,
			TeacherName: a.name,
			Average:     average,
			SurveyCount: len(a.surveys),
		}
		for level := range a.levels {
			out[level] = append(out[level], summary)
		}
	}
	return out
}

// QuestionAverage is one question's average score for one teacher.
type QuestionAverage struct {
	Index    int     `json:"index"`
	Question string  `json:"question"`
	Average  float64 `json:"average"`
}

// TeacherQuestionAverages averages each question for one teacher. The
// level, and with it the question list and scale, comes from the teacher's
// FIRST evaluation in the row set; mixed-level teachers are scored on that
// first scale throughout, matching the source system. Questions nobody
// answered average 0 and stay in the result.
func TeacherQuestionAverages(rows []AnswerRow, teacherKey string, questionsByLevel map[models.Level][]string) []QuestionAverage {
	var filtered []AnswerRow
	for _, row := range rows {
		if row.TeacherKey == teacherKey {
			filtered = append(filtered, row)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	level := filtered[0].Level
	questions := questionsByLevel[level]

	out := make([]QuestionAverage, 0, len(questions))
	for i, question := range questions {
		sum, answered := 0, 0
		for _, row := range filtered {
			if row.QuestionIndex != i {
				continue
			}
			if score := Score(level, row.Answer); score > 0 {
				sum += score
				answered++
			}
		}
		average := 0.0
		if answered > 0 {
			average = Round2(float64(sum) / float64(answered))
		}
		out = append(out, QuestionAverage{Index: i, Question: question, Average: average})
	}
	return out
}

// StudentTable lays out one row per evaluation for a (grade, teacher)
// pair, with level-appropriate answer labels in the cells.
type StudentTable struct {
	Questions []string          `json:"questions"`
	Rows      []StudentTableRow `json:"rows"`
}

// StudentTableRow labels one evaluation as "student (subject)" followed by
// one cell per question.
type StudentTableRow struct {
	Header string   `json:"header"`
	Cells  []string `json:"cells"`
}

// BuildStudentTable filters the rows to one grade and teacher and groups
// them back into per-evaluation table rows. Column texts fall back to
// "PREGUNTA N" when an answer index has no configured question.
func BuildStudentTable(rows []AnswerRow, gradeKey, teacherKey string, questionsByLevel map[models.Level][]string) StudentTable {
	var filtered []AnswerRow
	for _, row := range rows {
		if row.GradeKey == gradeKey && row.TeacherKey == teacherKey {
			filtered = append(filtered, row)
		}
	}
	if len(filtered) == 0 {
		return StudentTable{}
	}

	level := filtered[0].Level
	questions := questionsByLevel[level]
	columns := len(questions)
	for _, row := range filtered {
		if row.QuestionIndex >= columns {
			columns = row.QuestionIndex + 1
		}
	}

	headers := make([]string, columns)
	for i := range headers {
		if i < len(questions) && questions[i] != "" {
			headers[i] = questions[i]
		} else {
			headers[i] = fmt.Sprintf("PREGUNTA %d", i+1)
		}
	}

	byEvaluation := make(map[string]*StudentTableRow)
	var order []string
	for _, row := range filtered {
		tr, ok := byEvaluation[row.EvaluationID]
		if !ok {
			tr = &StudentTableRow{
				Header: fmt.Sprintf("%s (%s)", row.Student, row.SubjectName),
				Cells:  make([]string, columns),
			}
			byEvaluation[row.EvaluationID] = tr
			order = append(order, row.EvaluationID)
		}
		tr.Cells[row.QuestionIndex] = Label(level, row.Answer)
	}

	table := StudentTable{Questions: headers, Rows: make([]StudentTableRow, 0, len(order))}
	for _, id := range order {
		table.Rows = append(table.Rows, *byEvaluation[id])
	}
	return table
}
