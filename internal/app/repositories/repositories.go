package repositories

import (
	"context"

	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/db"
)

// IQuestionRepository defines the question-related database operations
type IQuestionRepository interface {
	GetRandomQuestion(ctx context.Context) (*models.QuestionView, error)
	GetRandomQuestionsByTopic(ctx context.Context, topicID int64, offset, count int) ([]models.QuestionView, error)
	GetRandomQuestionsForExam(ctx context.Context, examID int64, offset, count int) ([]models.QuestionView, error)
	GetQuestionByID(ctx context.Context, id int64) (*models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) (int64, error)
	UpdateQuestion(ctx context.Context, id int64, text, difficulty string, correctOption *string) error
	DeleteQuestion(ctx context.Context, id int64) error
	GetCorrectOptions(ctx context.Context, ids []int64) (map[int64]string, error)
}

// ITopicRepository defines the topic-related database operations
type ITopicRepository interface {
	GetTopicsForExam(ctx context.Context, examID int64) ([]models.Topic, error)
}

// IUserRepository defines the user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetAllUsersWithLatestScore(ctx context.Context) ([]models.UserScore, error)
}

// IQuizRepository defines the quiz-related database operations
type IQuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	SaveSubmission(ctx context.Context, quizID string, answers []models.QuizAnswer, score int) error
	GetQuizByID(ctx context.Context, quizID string) (*models.Quiz, error)
	GetQuizResponses(ctx context.Context, quizID string) ([]models.QuizAnswer, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	QuestionRepository *QuestionRepository
	TopicRepository    *TopicRepository
	UserRepository     *UserRepository
	QuizRepository     *QuizRepository
}

// NewRepositories initializes all repositories on the shared pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		QuestionRepository: NewQuestionRepository(database.Pool),
		TopicRepository:    NewTopicRepository(database.Pool),
		UserRepository:     NewUserRepository(database.Pool),
		QuizRepository:     NewQuizRepository(database),
	}
}
