package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/repositories"
)

// QuizService defines the interface for quiz attempt operations
type QuizService interface {
	StartQuiz(ctx context.Context, userID, topicID int64) (*models.Quiz, []models.QuestionView, error)
	SubmitQuiz(ctx context.Context, quizID string, answers []models.QuizAnswer) (int, error)
	GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error)
}

// quizServiceImpl implements the QuizService interface
type quizServiceImpl struct {
	questionRepo     repositories.IQuestionRepository
	quizRepo         repositories.IQuizRepository
	questionsPerQuiz int
	newID            func() string
	logger           zerolog.Logger
}

// NewQuizService creates a new quiz service instance.
// questionsPerQuiz is the number of random questions handed out when a quiz starts.
func NewQuizService(
	questionRepo repositories.IQuestionRepository,
	quizRepo repositories.IQuizRepository,
	questionsPerQuiz int,
	logger zerolog.Logger,
) QuizService {
	return &quizServiceImpl{
		questionRepo:     questionRepo,
		quizRepo:         quizRepo,
		questionsPerQuiz: questionsPerQuiz,
		newID:            uuid.NewString,
		logger:           logger,
	}
}

// StartQuiz draws random questions from the topic and records a new attempt with score 0.
// The questions are fetched before the row is written, so a failing insert leaves nothing behind.
func (s *quizServiceImpl) StartQuiz(ctx context.Context, userID, topicID int64) (*models.Quiz, []models.QuestionView, error) {
	quiz := &models.Quiz{
		ID:      s.newID(),
		UserID:  userID,
		TopicID: topicID,
	}

	questions, err := s.questionRepo.GetRandomQuestionsByTopic(ctx, topicID, 0, s.questionsPerQuiz)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to draw quiz questions: %w", err)
	}

	if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, nil, fmt.Errorf("failed to start quiz: %w", err)
	}

	s.logger.Info().
		Str("quizID", quiz.ID).
		Int64("userID", userID).
		Int64("topicID", topicID).
		Int("questions", len(questions)).
		Msg("Quiz started")

	return quiz, questions, nil
}

// SubmitQuiz scores the answers against the stored correct options and persists
// both the answers and the score. Resubmitting overwrites the previous score.
// Answers for unknown questions are skipped: they neither score nor get stored.
func (s *quizServiceImpl) SubmitQuiz(ctx context.Context, quizID string, answers []models.QuizAnswer) (int, error) {
	answerKey, err := s.questionRepo.GetCorrectOptions(ctx, questionIDs(answers))
	if err != nil {
		return 0, fmt.Errorf("failed to load answer key: %w", err)
	}

	score := CalculateScore(answers, answerKey)
	known := knownAnswers(answers, answerKey)

	if err := s.quizRepo.SaveSubmission(ctx, quizID, known, score); err != nil {
		return 0, fmt.Errorf("failed to save quiz %s: %w", quizID, err)
	}

	s.logger.Info().
		Str("quizID", quizID).
		Int("answers", len(answers)).
		Int("skipped", len(answers)-len(known)).
		Int("score", score).
		Msg("Quiz submitted")

	return score, nil
}

func (s *quizServiceImpl) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}

	responses, err := s.quizRepo.GetQuizResponses(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses of quiz %s: %w", quizID, err)
	}
	quiz.Responses = responses

	return quiz, nil
}
