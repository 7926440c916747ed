package survey

import (
	"errors"

	"github.com/evalua-app/evalua-api/internal/models"
)

var (
	// ErrNoQuestions rejects a session for a level whose question list is
	// empty; there is nothing to answer and the flow must not start.
	ErrNoQuestions = errors.New("survey: no questions configured for level")

	// ErrUnanswered blocks advancing past a question with no recorded answer.
	ErrUnanswered = errors.New("survey: current question has no answer")

	// ErrNotFinished marks an attempt to read answers before the last
	// question was answered.
	ErrNotFinished = errors.New("survey: session not finished")
)

// Session walks a student through one questionnaire. Index advances from 0
// to len(questions)-1; each advance requires a recorded answer for the
// current question. Previous retreats one question and keeps every later
// answer intact, so returning forward shows what was already picked.
//
// The original client's "previous" control advanced instead of retreating;
// that was judged a defect and this implementation retreats.
type Session struct {
	Level     models.Level
	Questions []string

	answers []models.Answer
	index   int
	done    bool
}

// NewSession starts a questionnaire over the level's question list.
func NewSession(level models.Level, questions []string) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		Level:     level,
		Questions: questions,
		answers:   make([]models.Answer, len(questions)),
	}, nil
}

// Index returns the current question position.
func (s *Session) Index() int {
	return s.index
}

// Finished reports whether the last question was answered and confirmed.
func (s *Session) Finished() bool {
	return s.done
}

// Current returns the text of the question in front of the student.
func (s *Session) Current() string {
	return s.Questions[s.index]
}

// Record stores the answer for the current question, replacing any earlier
// pick for the same position.
func (s *Session) Record(a models.Answer) {
	s.answers[s.index] = a
}

// Next advances to the following question, or finishes the session when the
// current question is the last one. It refuses to move past an unanswered
// question.
func (s *Session) Next() error {
	if s.answers[s.index].IsZero() {
		return ErrUnanswered
	}
	if s.index < len(s.Questions)-1 {
		s.index++
		return nil
	}
	s.done = true
	return nil
}

// Previous steps back one question. Answers recorded for later questions
// are preserved.
func (s *Session) Previous() {
	if s.index > 0 {
		s.index--
	}
}

// Answers returns the recorded answer list once the session finished.
func (s *Session) Answers() ([]models.Answer, error) {
	if !s.done {
		return nil, ErrNotFinished
	}
	out := make([]models.Answer, len(s.answers))
	copy(out, s.answers)
	return out, nil
}

// ValidateAnswers replays a submitted answer list through a session,
// enforcing the same rules the interactive flow enforces: the level must
// have questions and every question needs a non-null answer. Extra answers
// beyond the question list are ignored.
func ValidateAnswers(level models.Level, questions []string, answers []models.Answer) ([]models.Answer, error) {
	session, err := NewSession(level, questions)
	if err != nil {
		return nil, err
	}
	for i := range session.Questions {
		if i < len(answers) {
			session.Record(answers[i])
		}
		if err := session.Next(); err != nil {
			return nil, err
		}
	}
	return session.Answers()
}
