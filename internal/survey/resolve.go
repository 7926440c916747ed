package survey

import "github.com/evalua-app/evalua-api/internal/models"

// ResolvedAssignment is a grade assignment whose teacher and subject both
// still exist.
type ResolvedAssignment struct {
	Teacher models.Teacher `json:"teacher"`
	Subject models.Subject `json:"subject"`
}

// Resolve returns the (teacher, subject) pairs a student in the grade must
// evaluate right now. Assignments referencing deleted teachers or subjects
// are dropped silently; that inconsistency is tolerated by design, never an
// error. An empty result is valid and means the grade has nothing left to
// evaluate.
func Resolve(grade models.Grade, teachers []models.Teacher, subjects []models.Subject) []ResolvedAssignment {
	teacherByID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		teacherByID[t.ID] = t
	}
	subjectByID := make(map[string]models.Subject, len(subjects))
	for _, s := range subjects {
		subjectByID[s.ID] = s
	}

	resolved := make([]ResolvedAssignment, 0, len(grade.Assignments))
	for _, a := range grade.Assignments {
		teacher, ok := teacherByID[a.TeacherID]
		if !ok {
			continue
		}
		subject, ok := subjectByID[a.SubjectID]
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedAssignment{Teacher: teacher, Subject: subject})
	}
	return resolved
}
