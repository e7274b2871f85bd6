package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/pkg/logger"
)

// TopicRepository handles topic database operations
type TopicRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetTopicsForExam lists the topics of an exam ordered by id.
// An unknown exam yields an empty list.
func (r *TopicRepository) GetTopicsForExam(ctx context.Context, examID int64) ([]models.Topic, error) {
	sql, args, err := r.sb.Select("t.topic_id", "t.topic_name", "t.exam_id", "en.exam_name").
		From("topics t").
		Join("exams e ON t.exam_id = e.exam_id").
		Join("exam_names en ON e.exam_name_id = en.exam_name_id").
		Where(squirrel.Eq{"t.exam_id": examID}).
		OrderBy("t.topic_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get topics SQL")
		return nil, fmt.Errorf("failed to build get topics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", examID).Msg("Error executing get topics query")
		return nil, fmt.Errorf("error querying topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.ExamID, &t.ExamName); err != nil {
			return nil, fmt.Errorf("error scanning topic row: %w", err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topic rows: %w", err)
	}

	return topics, nil
}
