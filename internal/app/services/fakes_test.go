package services

import (
	"context"
	"sync"

	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
)

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[int64]*models.Question
	views     []models.QuestionView
	nextID    int64

	lastOffset, lastCount int
	lastTopicID           int64
	lastKeyIDs            []int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[int64]*models.Question{}, nextID: 1}
}

func (f *fakeQuestionRepo) GetRandomQuestion(ctx context.Context) (*models.QuestionView, error) {
	if len(f.views) == 0 {
		return nil, apperrors.ErrQuestionNotFound
	}
	v := f.views[0]
	return &v, nil
}

func (f *fakeQuestionRepo) GetRandomQuestionsByTopic(ctx context.Context, topicID int64, offset, count int) ([]models.QuestionView, error) {
	f.lastTopicID, f.lastOffset, f.lastCount = topicID, offset, count
	return window(f.views, offset, count), nil
}

func (f *fakeQuestionRepo) GetRandomQuestionsForExam(ctx context.Context, examID int64, offset, count int) ([]models.QuestionView, error) {
	f.lastOffset, f.lastCount = offset, count
	return window(f.views, offset, count), nil
}

func (f *fakeQuestionRepo) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q.TopicID == 404 {
		return 0, apperrors.ErrTopicNotFound
	}
	id := f.nextID
	f.nextID++
	stored := *q
	stored.ID = id
	f.questions[id] = &stored
	return id, nil
}

func (f *fakeQuestionRepo) UpdateQuestion(ctx context.Context, id int64, text, difficulty string, correctOption *string) error {
	q, ok := f.questions[id]
	if !ok {
		return apperrors.ErrQuestionNotFound
	}
	q.Text, q.Difficulty = text, difficulty
	if correctOption != nil {
		q.CorrectOption = *correctOption
	}
	return nil
}

func (f *fakeQuestionRepo) DeleteQuestion(ctx context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) GetCorrectOptions(ctx context.Context, ids []int64) (map[int64]string, error) {
	f.lastKeyIDs = ids
	key := map[int64]string{}
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			key[id] = q.CorrectOption
		}
	}
	return key, nil
}

func window(views []models.QuestionView, offset, count int) []models.QuestionView {
	out := []models.QuestionView{}
	for i := offset; i < len(views) && len(out) < count; i++ {
		out = append(out, views[i])
	}
	return out
}

type fakeTopicRepo struct {
	topics []models.Topic
}

func (f *fakeTopicRepo) GetTopicsForExam(ctx context.Context, examID int64) ([]models.Topic, error) {
	out := []models.Topic{}
	for _, t := range f.topics {
		if t.ExamID == examID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeQuizRepo struct {
	quizzes   map[string]*models.Quiz
	responses map[string][]models.QuizAnswer
	createErr error
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[string]*models.Quiz{}, responses: map[string][]models.QuizAnswer{}}
}

func (f *fakeQuizRepo) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *quiz
	f.quizzes[quiz.ID] = &stored
	return nil
}

func (f *fakeQuizRepo) SaveSubmission(ctx context.Context, quizID string, answers []models.QuizAnswer, score int) error {
	q, ok := f.quizzes[quizID]
	if !ok {
		return apperrors.ErrQuizNotFound
	}
	f.responses[quizID] = append(f.responses[quizID], answers...)
	q.Score = score
	return nil
}

func (f *fakeQuizRepo) GetQuizByID(ctx context.Context, quizID string) (*models.Quiz, error) {
	q, ok := f.quizzes[quizID]
	if !ok {
		return nil, apperrors.ErrQuizNotFound
	}
	return q, nil
}

func (f *fakeQuizRepo) GetQuizResponses(ctx context.Context, quizID string) ([]models.QuizAnswer, error) {
	return f.responses[quizID], nil
}

type fakeUserRepo struct {
	users  map[string]*models.User
	scores []models.UserScore
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	if _, ok := f.users[user.Username]; ok {
		return 0, apperrors.ErrUsernameAlreadyExists
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.ID = f.nextID
	f.nextID++
	f.users[user.Username] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserRepo) GetAllUsersWithLatestScore(ctx context.Context) ([]models.UserScore, error) {
	return f.scores, nil
}
