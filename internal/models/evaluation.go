package models

import "time"

// Evaluation is one student's submitted questionnaire for one
// (grade, teacher, subject) triple. The student name is the sole student
// identity: exact string match, no normalization. Answers are index-aligned
// with the level's question list at submission time, but the model tolerates
// shorter or longer lists (extra answers are ignored, missing ones score as
// absent).
type Evaluation struct {
	ID          string     `db:"id" json:"id"`
	StudentName string     `db:"student_name" json:"studentName"`
	GradeID     int        `db:"grade_id" json:"gradeId"`
	TeacherID   string     `db:"teacher_id" json:"teacherId"`
	SubjectID   string     `db:"subject_id" json:"subjectId"`
	Answers     AnswerList `db:"answers" json:"answers"`
	Timestamp   time.Time  `db:"timestamp" json:"timestamp"`
}
