package repository

import (
	"context"
	"fmt"
	"time"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/repository/models"
	"trivia-harvester/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	deleteAllQuestionsQuery = `DELETE FROM trivia_questions`
	insertQuestionQuery     = `INSERT INTO trivia_questions (
		id, run_id, position, question, answer, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`
	countQuestionsQuery = `SELECT COUNT(*) FROM trivia_questions`
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db        *sqlx.DB
	txManager domain.TransactionManager
	now       func() time.Time
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{
		db:        db,
		txManager: NewTransactionManagerAdapter(db),
		now:       time.Now,
	}
}

// ReplaceAll swaps the table contents for items in one transaction, mirroring the
// overwrite semantics of the output file.
func (a *QuestionDatabaseAdapter) ReplaceAll(ctx context.Context, runID string, items []domain.NormalizedItem) error {
	createdAt := a.now()
	return a.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, a.db)
		if _, err := exec.ExecContext(ctx, deleteAllQuestionsQuery); err != nil {
			return fmt.Errorf("failed to clear trivia questions: %w", err)
		}
		for i, item := range items {
			row := models.TriviaQuestion{
				ID:        util.NewRunID(),
				RunID:     runID,
				Position:  i,
				Question:  item.Question,
				Answer:    item.Answer,
				CreatedAt: createdAt,
			}
			_, err := exec.ExecContext(ctx, insertQuestionQuery,
				row.ID, row.RunID, row.Position, row.Question, row.Answer, row.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert trivia question %d: %w", i, err)
			}
		}
		return nil
	})
}

// Count implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Count(ctx context.Context) (int, error) {
	var count int
	if err := a.db.GetContext(ctx, &count, countQuestionsQuery); err != nil {
		return 0, fmt.Errorf("failed to count trivia questions: %w", err)
	}
	return count, nil
}
