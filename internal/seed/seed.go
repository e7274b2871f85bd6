package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/quizapi/internal/app/models"
	appRepos "github.com/yigit/quizapi/internal/app/repositories"
	"github.com/yigit/quizapi/internal/config"
	"github.com/yigit/quizapi/internal/db"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/auth"
)

// sampleQuestion is one seeded question with its correct option
type sampleQuestion struct {
	text, difficulty, correct string
}

// sampleExam is the catalogue created on a fresh database
var sampleExam = struct {
	name   string
	topics map[string][]sampleQuestion
}{
	name: "General Knowledge",
	topics: map[string][]sampleQuestion{
		"Mathematics": {
			{"What is 7 x 8?", "easy", "56"},
			{"What is the square root of 144?", "easy", "12"},
			{"What is the derivative of x^2?", "medium", "2x"},
			{"How many prime numbers are below 20?", "hard", "8"},
		},
		"Geography": {
			{"What is the capital of Japan?", "easy", "Tokyo"},
			{"Which river flows through Cairo?", "medium", "Nile"},
			{"What is the smallest country by area?", "hard", "Vatican City"},
		},
	},
}

// CreateDefaultData seeds one exam with topics and questions plus an admin account.
// Every step checks for existing rows first, so running it on each start is safe.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, repos *appRepos.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (exam, topics, questions, admin)...")
	var finalErr error // collect errors without stopping the process

	topicIDs, err := ensureExamAndTopics(ctx, database)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default exam and topics")
		finalErr = errors.Join(finalErr, err)
	}

	for topicName, topicID := range topicIDs {
		created, err := ensureQuestions(ctx, database, repos.QuestionRepository, topicID, sampleExam.topics[topicName])
		if err != nil {
			lgr.Error().Err(err).Str("topic", topicName).Msg("Error creating default questions")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created > 0 {
			lgr.Info().Str("topic", topicName).Int("questions", created).Msg("Default questions created")
		}
	}

	if err := ensureAdmin(ctx, repos.UserRepository, cfg); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// ensureExamAndTopics returns the topic ids of the sample exam keyed by topic name
func ensureExamAndTopics(ctx context.Context, database *db.PostgresDB) (map[string]int64, error) {
	topicIDs := make(map[string]int64, len(sampleExam.topics))

	err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var examNameID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO exam_names (exam_name) VALUES ($1)
			ON CONFLICT (exam_name) DO UPDATE SET exam_name = EXCLUDED.exam_name
			RETURNING exam_name_id`, sampleExam.name).Scan(&examNameID)
		if err != nil {
			return fmt.Errorf("error upserting exam name: %w", err)
		}

		var examID int64
		err = tx.QueryRow(ctx, `SELECT exam_id FROM exams WHERE exam_name_id = $1 ORDER BY exam_id LIMIT 1`, examNameID).Scan(&examID)
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.QueryRow(ctx, `INSERT INTO exams (exam_name_id) VALUES ($1) RETURNING exam_id`, examNameID).Scan(&examID)
		}
		if err != nil {
			return fmt.Errorf("error ensuring exam: %w", err)
		}

		for name := range sampleExam.topics {
			var topicID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO topics (topic_name, exam_id) VALUES ($1, $2)
				ON CONFLICT ON CONSTRAINT topics_exam_topic_name_key DO UPDATE SET topic_name = EXCLUDED.topic_name
				RETURNING topic_id`, name, examID).Scan(&topicID)
			if err != nil {
				return fmt.Errorf("error upserting topic %q: %w", name, err)
			}
			topicIDs[name] = topicID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topicIDs, nil
}

// ensureQuestions adds the sample questions to a topic that has none yet
func ensureQuestions(ctx context.Context, database *db.PostgresDB, questionRepo appRepos.IQuestionRepository, topicID int64, questions []sampleQuestion) (int, error) {
	var existing int
	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE topic_id = $1`, topicID).Scan(&existing); err != nil {
		return 0, fmt.Errorf("error counting questions: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	for _, q := range questions {
		_, err := questionRepo.CreateQuestion(ctx, &appModels.Question{
			TopicID:       topicID,
			Text:          q.text,
			Difficulty:    q.difficulty,
			CorrectOption: q.correct,
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ensureAdmin registers the configured admin account unless the username is taken
func ensureAdmin(ctx context.Context, userRepo appRepos.IUserRepository, cfg *config.Config) error {
	exists, err := userRepo.UsernameExists(ctx, cfg.Seed.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.NewPasswordHasher(0).Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, &appModels.User{
		Name:     "Administrator",
		Username: cfg.Seed.AdminUsername,
		Password: hashed,
		Email:    cfg.Seed.AdminEmail,
		Role:     appModels.RoleAdmin,
	})
	if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return err
	}
	return nil
}
