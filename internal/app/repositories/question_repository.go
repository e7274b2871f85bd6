package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/dberrors"
	"github.com/yigit/quizapi/internal/pkg/logger"
)

// QuestionRepository handles question database operations
type QuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// questionViewQuery selects questions joined through topic and exam to the exam name
func (r *QuestionRepository) questionViewQuery() squirrel.SelectBuilder {
	return r.sb.Select("q.question_id", "q.question_text", "q.difficulty", "t.topic_name", "en.exam_name").
		From("questions q").
		Join("topics t ON q.topic_id = t.topic_id").
		Join("exams e ON t.exam_id = e.exam_id").
		Join("exam_names en ON e.exam_name_id = en.exam_name_id")
}

func (r *QuestionRepository) queryViews(ctx context.Context, query squirrel.SelectBuilder, op string) ([]models.QuestionView, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building question SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing question query")
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuestionView{}
	for rows.Next() {
		var q models.QuestionView
		if err := rows.Scan(&q.ID, &q.Text, &q.Difficulty, &q.TopicName, &q.ExamName); err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating question rows")
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}

// GetRandomQuestion returns one question picked by the database at random
func (r *QuestionRepository) GetRandomQuestion(ctx context.Context) (*models.QuestionView, error) {
	questions, err := r.queryViews(ctx, r.questionViewQuery().OrderBy("RANDOM()").Limit(1), "random question")
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperrors.ErrQuestionNotFound
	}
	return &questions[0], nil
}

// GetRandomQuestionsByTopic returns up to count random questions of a topic, skipping offset rows
func (r *QuestionRepository) GetRandomQuestionsByTopic(ctx context.Context, topicID int64, offset, count int) ([]models.QuestionView, error) {
	query := r.questionViewQuery().
		Where(squirrel.Eq{"q.topic_id": topicID}).
		OrderBy("RANDOM()").
		Offset(uint64(offset)).
		Limit(uint64(count))
	return r.queryViews(ctx, query, "random questions by topic")
}

// GetRandomQuestionsForExam returns up to count random questions across all topics of an exam
func (r *QuestionRepository) GetRandomQuestionsForExam(ctx context.Context, examID int64, offset, count int) ([]models.QuestionView, error) {
	query := r.questionViewQuery().
		Where(squirrel.Eq{"e.exam_id": examID}).
		OrderBy("RANDOM()").
		Offset(uint64(offset)).
		Limit(uint64(count))
	return r.queryViews(ctx, query, "random questions for exam")
}

// CreateQuestion inserts a question and returns its id
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) (int64, error) {
	sql, args, err := r.sb.Insert("questions").
		Columns("topic_id", "question_text", "difficulty", "correct_option").
		Values(question.TopicID, question.Text, question.Difficulty, question.CorrectOption).
		Suffix("RETURNING question_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create question SQL")
		return 0, fmt.Errorf("failed to build create question query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrTopicNotFound
		}
		logger.Error().Err(err).Int64("topicID", question.TopicID).Msg("Error executing create question query")
		return 0, fmt.Errorf("error creating question: %w", err)
	}

	return id, nil
}

// UpdateQuestion updates text and difficulty, and the correct option when it is provided
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, id int64, text, difficulty string, correctOption *string) error {
	values := map[string]interface{}{
		"question_text": text,
		"difficulty":    difficulty,
	}
	if correctOption != nil {
		values["correct_option"] = *correctOption
	}

	sql, args, err := r.sb.Update("questions").
		SetMap(values).
		Where(squirrel.Eq{"question_id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update question SQL")
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error executing update question query")
		return fmt.Errorf("error updating question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// DeleteQuestion deletes a question by id; its recorded responses cascade
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("questions").
		Where(squirrel.Eq{"question_id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete question SQL")
		return fmt.Errorf("failed to build delete question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error executing delete question query")
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// GetQuestionByID retrieves a stored question including its correct option
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	sql, args, err := r.sb.Select("question_id", "topic_id", "question_text", "difficulty", "correct_option", "created_at").
		From("questions").
		Where(squirrel.Eq{"question_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	q := &models.Question{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&q.ID, &q.TopicID, &q.Text, &q.Difficulty, &q.CorrectOption, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", id).Msg("Error scanning question row")
		return nil, fmt.Errorf("error getting question by ID: %w", err)
	}

	return q, nil
}

// GetCorrectOptions returns the correct option of every existing question among ids.
// Ids without a stored question are simply absent from the result.
func (r *QuestionRepository) GetCorrectOptions(ctx context.Context, ids []int64) (map[int64]string, error) {
	answerKey := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return answerKey, nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	sql, args, err := r.sb.Select("question_id", "correct_option").
		From("questions").
		Where(squirrel.Eq{"question_id": unique}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build answer key query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("questions", len(unique)).Msg("Error loading answer key")
		return nil, fmt.Errorf("error loading answer key: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     int64
			option string
		)
		if err := rows.Scan(&id, &option); err != nil {
			return nil, fmt.Errorf("error scanning answer key row: %w", err)
		}
		answerKey[id] = option
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer key rows: %w", err)
	}

	return answerKey, nil
}
