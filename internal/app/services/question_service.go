package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/repositories"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/validation"
)

// QuestionService defines the interface for question and topic operations
type QuestionService interface {
	GetRandomQuestion(ctx context.Context) (*models.QuestionView, error)
	GetRandomQuestionsByTopic(ctx context.Context, topicID int64, offset, count int) ([]models.QuestionView, error)
	GetRandomQuestionsForExam(ctx context.Context, examID int64, offset, count int) ([]models.QuestionView, error)
	GetTopicsForExam(ctx context.Context, examID int64) ([]models.Topic, error)
	AddQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (int64, error)
	UpdateQuestion(ctx context.Context, id int64, req *dto.UpdateQuestionRequest) (*models.Question, error)
	RemoveQuestion(ctx context.Context, id int64) error
}

// questionServiceImpl implements the QuestionService interface
type questionServiceImpl struct {
	questionRepo repositories.IQuestionRepository
	topicRepo    repositories.ITopicRepository
}

// NewQuestionService creates a new question service instance
func NewQuestionService(questionRepo repositories.IQuestionRepository, topicRepo repositories.ITopicRepository) QuestionService {
	return &questionServiceImpl{
		questionRepo: questionRepo,
		topicRepo:    topicRepo,
	}
}

// normalizeDifficulty validates and lower-cases a difficulty value
func normalizeDifficulty(difficulty string) (string, error) {
	if !validation.IsValidDifficulty(difficulty) {
		return "", apperrors.NewValidationError("difficulty must be one of: " + strings.Join(validation.Difficulties, ", "))
	}
	return strings.ToLower(strings.TrimSpace(difficulty)), nil
}

// validateQuestionFields bounds the stored text and answer key. Handlers
// already bind the same limits; the service repeats them for other callers.
func validateQuestionFields(text string, correctOption *string) error {
	if !validation.NewStringValidation(text).WithMaxLength(validation.QuestionMaxLength).Validate() {
		return apperrors.NewValidationError(fmt.Sprintf("question_text must be between 1 and %d characters", validation.QuestionMaxLength))
	}
	if correctOption != nil {
		option := validation.NewStringValidation(*correctOption).WithRequired(false).WithMaxLength(validation.OptionMaxLength)
		if !option.Validate() {
			return apperrors.NewValidationError(fmt.Sprintf("correct_option must not exceed %d characters", validation.OptionMaxLength))
		}
	}
	return nil
}

func (s *questionServiceImpl) GetRandomQuestion(ctx context.Context) (*models.QuestionView, error) {
	question, err := s.questionRepo.GetRandomQuestion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get random question: %w", err)
	}
	return question, nil
}

func (s *questionServiceImpl) GetRandomQuestionsByTopic(ctx context.Context, topicID int64, offset, count int) ([]models.QuestionView, error) {
	questions, err := s.questionRepo.GetRandomQuestionsByTopic(ctx, topicID, offset, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get random questions for topic %d: %w", topicID, err)
	}
	return questions, nil
}

func (s *questionServiceImpl) GetRandomQuestionsForExam(ctx context.Context, examID int64, offset, count int) ([]models.QuestionView, error) {
	questions, err := s.questionRepo.GetRandomQuestionsForExam(ctx, examID, offset, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get random questions for exam %d: %w", examID, err)
	}
	return questions, nil
}

func (s *questionServiceImpl) GetTopicsForExam(ctx context.Context, examID int64) ([]models.Topic, error) {
	topics, err := s.topicRepo.GetTopicsForExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topics for exam %d: %w", examID, err)
	}
	return topics, nil
}

// AddQuestion stores a new question under an existing topic
func (s *questionServiceImpl) AddQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (int64, error) {
	if strings.TrimSpace(req.QuestionText) == "" {
		return 0, apperrors.NewValidationError("question_text cannot be empty")
	}
	if err := validateQuestionFields(req.QuestionText, &req.CorrectOption); err != nil {
		return 0, err
	}
	difficulty, err := normalizeDifficulty(req.Difficulty)
	if err != nil {
		return 0, err
	}

	id, err := s.questionRepo.CreateQuestion(ctx, &models.Question{
		TopicID:       req.TopicID,
		Text:          strings.TrimSpace(req.QuestionText),
		Difficulty:    difficulty,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add question: %w", err)
	}
	return id, nil
}

// UpdateQuestion replaces the text and difficulty of a question and returns the stored row
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id int64, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	if strings.TrimSpace(req.QuestionText) == "" {
		return nil, apperrors.NewValidationError("question_text cannot be empty")
	}
	if err := validateQuestionFields(req.QuestionText, req.CorrectOption); err != nil {
		return nil, err
	}
	difficulty, err := normalizeDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateQuestion(ctx, id, strings.TrimSpace(req.QuestionText), difficulty, req.CorrectOption); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload question %d: %w", id, err)
	}
	return question, nil
}

// RemoveQuestion deletes a question by id
func (s *questionServiceImpl) RemoveQuestion(ctx context.Context, id int64) error {
	if err := s.questionRepo.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("failed to remove question %d: %w", id, err)
	}
	return nil
}
