package survey

import "github.com/evalua-app/evalua-api/internal/models"

// Outcome is the state the flow lands in right after a submission.
type Outcome string

const (
	// OutcomeNothingToEvaluate: the grade resolves to zero valid
	// assignments, so the student is done before starting.
	OutcomeNothingToEvaluate Outcome = "nothing_to_evaluate"

	// OutcomeGradeComplete: every valid assignment has at least one
	// evaluation by this student. Terminal.
	OutcomeGradeComplete Outcome = "grade_complete"

	// OutcomeSurveyRecorded: one more survey stored, others still pending.
	OutcomeSurveyRecorded Outcome = "survey_recorded"
)

// AssignmentProgress pairs a resolved assignment with its completion flag
// for one student.
type AssignmentProgress struct {
	ResolvedAssignment
	Completed bool `json:"completed"`
}

// Progress classifies each valid assignment of a grade as completed or
// pending for the given student. A student may have accumulated duplicate
// evaluations for the same (grade, teacher, subject) tuple; any one of them
// marks the assignment completed, so the completed count never exceeds the
// number of valid assignments.
func Progress(grade models.Grade, teachers []models.Teacher, subjects []models.Subject, history []models.Evaluation, studentName string) []AssignmentProgress {
	resolved := Resolve(grade, teachers, subjects)

	type tuple struct {
		teacherID string
		subjectID string
	}
	done := make(map[tuple]struct{})
	for _, ev := range history {
		if ev.StudentName != studentName || ev.GradeID != grade.ID {
			continue
		}
		done[tuple{ev.TeacherID, ev.SubjectID}] = struct{}{}
	}

	progress := make([]AssignmentProgress, 0, len(resolved))
	for _, ra := range resolved {
		_, completed := done[tuple{ra.Teacher.ID, ra.Subject.ID}]
		progress = append(progress, AssignmentProgress{ResolvedAssignment: ra, Completed: completed})
	}
	return progress
}

// CompletedCount counts completed assignments within a progress list.
func CompletedCount(progress []AssignmentProgress) int {
	count := 0
	for _, p := range progress {
		if p.Completed {
			count++
		}
	}
	return count
}

// ResolveOutcome decides the post-submission state for a student in a
// grade, per the valid-assignment total and how many are completed.
func ResolveOutcome(progress []AssignmentProgress) Outcome {
	total := len(progress)
	if total == 0 {
		return OutcomeNothingToEvaluate
	}
	if CompletedCount(progress) >= total {
		return OutcomeGradeComplete
	}
	return OutcomeSurveyRecorded
}
