package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/db"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/dberrors"
	"github.com/yigit/quizapi/internal/pkg/logger"
)

// QuizRepository handles quiz and quiz response database operations
type QuizRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(database *db.PostgresDB) *QuizRepository {
	return &QuizRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateQuiz records a new attempt with score 0
func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	sql, args, err := r.sb.Insert("quizzes").
		Columns("quiz_id", "user_id", "topic_id", "score").
		Values(quiz.ID, quiz.UserID, quiz.TopicID, 0).
		Suffix("RETURNING started_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create quiz SQL")
		return fmt.Errorf("failed to build create quiz query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&quiz.StartedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrQuizReferenceNotFound
		}
		logger.Error().Err(err).Str("quizID", quiz.ID).Msg("Error executing create quiz query")
		return fmt.Errorf("error creating quiz: %w", err)
	}
	quiz.Score = 0

	return nil
}

// SaveSubmission stores every answer and the final score of a quiz atomically.
// Either all responses and the score are persisted or none are.
func (r *QuizRepository) SaveSubmission(ctx context.Context, quizID string, answers []models.QuizAnswer, score int) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var locked string
		err := tx.QueryRow(ctx, `SELECT quiz_id FROM quizzes WHERE quiz_id = $1 FOR UPDATE`, quizID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrQuizNotFound
			}
			return fmt.Errorf("error locking quiz: %w", err)
		}

		if len(answers) > 0 {
			insert := r.sb.Insert("quiz_responses").Columns("quiz_id", "question_id", "selected_option")
			for _, a := range answers {
				insert = insert.Values(quizID, a.QuestionID, a.SelectedOption)
			}
			sql, args, err := insert.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert responses query: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrQuestionNotFound
				}
				logger.Error().Err(err).Str("quizID", quizID).Msg("Error inserting quiz responses")
				return fmt.Errorf("error inserting quiz responses: %w", err)
			}
		}

		sql, args, err := r.sb.Update("quizzes").
			Set("score", score).
			Set("submitted_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"quiz_id": quizID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update score query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("quizID", quizID).Msg("Error updating quiz score")
			return fmt.Errorf("error updating quiz score: %w", err)
		}

		return nil
	})
}

// GetQuizByID retrieves a quiz attempt by its id
func (r *QuizRepository) GetQuizByID(ctx context.Context, quizID string) (*models.Quiz, error) {
	sql, args, err := r.sb.Select("quiz_id", "user_id", "topic_id", "score", "started_at", "submitted_at").
		From("quizzes").
		Where(squirrel.Eq{"quiz_id": quizID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get quiz query: %w", err)
	}

	q := &models.Quiz{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&q.ID, &q.UserID, &q.TopicID, &q.Score, &q.StartedAt, &q.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		logger.Error().Err(err).Str("quizID", quizID).Msg("Error scanning quiz row")
		return nil, fmt.Errorf("error getting quiz by ID: %w", err)
	}

	return q, nil
}

// GetQuizResponses lists the answers recorded for a quiz in insertion order
func (r *QuizRepository) GetQuizResponses(ctx context.Context, quizID string) ([]models.QuizAnswer, error) {
	sql, args, err := r.sb.Select("question_id", "selected_option").
		From("quiz_responses").
		Where(squirrel.Eq{"quiz_id": quizID}).
		OrderBy("response_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get responses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("quizID", quizID).Msg("Error querying quiz responses")
		return nil, fmt.Errorf("error querying quiz responses: %w", err)
	}
	defer rows.Close()

	answers := []models.QuizAnswer{}
	for rows.Next() {
		var a models.QuizAnswer
		if err := rows.Scan(&a.QuestionID, &a.SelectedOption); err != nil {
			return nil, fmt.Errorf("error scanning quiz response row: %w", err)
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz response rows: %w", err)
	}

	return answers, nil
}
