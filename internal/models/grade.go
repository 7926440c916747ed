package models

// TeachingAssignment binds a teacher to a subject within a grade. Both ids
// are weak references: the teacher or subject may have been deleted since
// the assignment was written, in which case consumers must skip the pair.
type TeachingAssignment struct {
	TeacherID string `db:"teacher_id" json:"teacherId"`
	SubjectID string `db:"subject_id" json:"subjectId"`
}

// GradeAssignment is a TeachingAssignment qualified with its grade, the
// row shape of the assignments table and the payload of the replace flow.
type GradeAssignment struct {
	GradeID   int    `db:"grade_id" json:"gradeId"`
	TeacherID string `db:"teacher_id" json:"teacherId"`
	SubjectID string `db:"subject_id" json:"subjectId"`
}

// Grade is a class cohort (e.g. "5°A") with its embedded assignment list.
type Grade struct {
	ID          int                  `db:"id" json:"id"`
	Name        string               `db:"name" json:"name"`
	Level       Level                `db:"level" json:"level"`
	Assignments []TeachingAssignment `db:"-" json:"assignments"`
}
