package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/evalua-app/evalua-api/internal/models"
)

// QuestionRepository manages the two level-scoped question sequences.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository constructs a QuestionRepository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListByLevel returns the level's questions in sequence order.
func (r *QuestionRepository) ListByLevel(ctx context.Context, level models.Level) ([]models.Question, error) {
	var questions []models.Question
	const query = `SELECT id, level, question_order, text FROM questions WHERE level = $1 ORDER BY question_order`
	if err := r.db.SelectContext(ctx, &questions, query, level); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// ReplaceForLevel swaps the level's whole question list for the provided
// texts, renumbering from 1, in one transaction. Existing evaluations keep
// their answer positions; re-ordering questions silently re-labels history.
func (r *QuestionRepository) ReplaceForLevel(ctx context.Context, level models.Level, texts []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace questions: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM questions WHERE level = $1`, level); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}

	const query = `INSERT INTO questions (level, question_order, text) VALUES ($1, $2, $3)`
	for i, text := range texts {
		if _, err = tx.ExecContext(ctx, query, level, i+1, text); err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace questions: %w", err)
	}
	return nil
}
