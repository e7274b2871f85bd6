package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/auth"
	"github.com/yigit/quizapi/internal/pkg/validation"
)

func sampleViews(n int) []models.QuestionView {
	views := make([]models.QuestionView, 0, n)
	for i := 1; i <= n; i++ {
		views = append(views, models.QuestionView{ID: int64(i), Text: "q", Difficulty: "easy", TopicName: "Algebra", ExamName: "Math"})
	}
	return views
}

func TestQuestionServiceAddValidatesDifficulty(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeTopicRepo{})
	ctx := context.Background()

	_, err := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{TopicID: 1, QuestionText: "2+2?", Difficulty: "impossible"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}

	id, err := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{TopicID: 1, QuestionText: " 2+2? ", Difficulty: "Easy", CorrectOption: "4"})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	stored := repo.questions[id]
	if stored.Difficulty != "easy" || stored.Text != "2+2?" || stored.CorrectOption != "4" {
		t.Fatalf("unexpected stored question %+v", stored)
	}
}

func TestQuestionServiceFieldLengthLimits(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeTopicRepo{})
	ctx := context.Background()

	longText := strings.Repeat("q", validation.QuestionMaxLength+1)
	if _, err := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{TopicID: 1, QuestionText: longText, Difficulty: "easy"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for long question_text, got %v", err)
	}

	longOption := strings.Repeat("o", validation.OptionMaxLength+1)
	if _, err := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{TopicID: 1, QuestionText: "x", Difficulty: "easy", CorrectOption: longOption}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for long correct_option, got %v", err)
	}
	if len(repo.questions) != 0 {
		t.Fatalf("rejected questions were stored: %d", len(repo.questions))
	}

	id, err := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{
		TopicID:       1,
		QuestionText:  strings.Repeat("q", validation.QuestionMaxLength),
		Difficulty:    "easy",
		CorrectOption: strings.Repeat("o", validation.OptionMaxLength),
	})
	if err != nil {
		t.Fatalf("AddQuestion at the limits: %v", err)
	}

	if _, err := svc.UpdateQuestion(ctx, id, &dto.UpdateQuestionRequest{QuestionText: "x", Difficulty: "easy", CorrectOption: &longOption}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for long correct_option on update, got %v", err)
	}
	if _, err := svc.UpdateQuestion(ctx, id, &dto.UpdateQuestionRequest{QuestionText: longText, Difficulty: "easy"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for long question_text on update, got %v", err)
	}
}

func TestQuestionServiceUnknownTopic(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), &fakeTopicRepo{})
	_, err := svc.AddQuestion(context.Background(), &dto.CreateQuestionRequest{TopicID: 404, QuestionText: "x", Difficulty: "hard"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuestionServiceUpdateAndRemove(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo, &fakeTopicRepo{})
	ctx := context.Background()

	id, _ := svc.AddQuestion(ctx, &dto.CreateQuestionRequest{TopicID: 1, QuestionText: "old", Difficulty: "easy", CorrectOption: "A"})

	updated, err := svc.UpdateQuestion(ctx, id, &dto.UpdateQuestionRequest{QuestionText: "new", Difficulty: "hard"})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.ID != id || updated.Text != "new" || updated.Difficulty != "hard" || updated.CorrectOption != "A" {
		t.Fatalf("unexpected question returned by update %+v", updated)
	}
	if q := repo.questions[id]; q.Text != "new" || q.Difficulty != "hard" || q.CorrectOption != "A" {
		t.Fatalf("unexpected question after update %+v", q)
	}

	if _, err := svc.UpdateQuestion(ctx, 999, &dto.UpdateQuestionRequest{QuestionText: "x", Difficulty: "easy"}); !errors.Is(err, apperrors.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	if err := svc.RemoveQuestion(ctx, id); err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	if err := svc.RemoveQuestion(ctx, id); !errors.Is(err, apperrors.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound on second remove, got %v", err)
	}
}

func TestQuestionServiceTopicsForExam(t *testing.T) {
	topics := &fakeTopicRepo{topics: []models.Topic{
		{ID: 1, Name: "Algebra", ExamID: 1, ExamName: "Math"},
		{ID: 2, Name: "Mechanics", ExamID: 2, ExamName: "Physics"},
	}}
	svc := NewQuestionService(newFakeQuestionRepo(), topics)

	got, err := svc.GetTopicsForExam(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ExamID != 1 {
		t.Fatalf("unexpected topics %+v", got)
	}
}

func TestQuizServiceStartAndSubmit(t *testing.T) {
	questions := newFakeQuestionRepo()
	questions.views = sampleViews(20)
	questions.questions[1] = &models.Question{ID: 1, CorrectOption: "A"}
	questions.questions[2] = &models.Question{ID: 2, CorrectOption: "B"}
	quizzes := newFakeQuizRepo()

	svc := NewQuizService(questions, quizzes, 15, zerolog.Nop())
	ctx := context.Background()

	quiz, drawn, err := svc.StartQuiz(ctx, 7, 3)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if quiz.ID == "" || len(drawn) != 15 {
		t.Fatalf("unexpected start result id=%q questions=%d", quiz.ID, len(drawn))
	}
	if questions.lastOffset != 0 || questions.lastCount != 15 || questions.lastTopicID != 3 {
		t.Fatalf("unexpected draw window offset=%d count=%d topic=%d", questions.lastOffset, questions.lastCount, questions.lastTopicID)
	}
	if stored := quizzes.quizzes[quiz.ID]; stored == nil || stored.Score != 0 || stored.UserID != 7 {
		t.Fatalf("quiz not persisted with score 0: %+v", stored)
	}

	score, err := svc.SubmitQuiz(ctx, quiz.ID, []models.QuizAnswer{{QuestionID: 1, SelectedOption: "A"}, {QuestionID: 2, SelectedOption: "C"}, {QuestionID: 42, SelectedOption: "A"}})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if score != 1 {
		t.Fatalf("score = %d, want 1", score)
	}
	// question 42 does not exist, so only two answers are stored
	if stored := quizzes.responses[quiz.ID]; len(stored) != 2 || stored[0].QuestionID != 1 || stored[1].QuestionID != 2 {
		t.Fatalf("expected answers for questions 1 and 2 to be stored, got %+v", stored)
	}

	// resubmission overwrites
	score, err = svc.SubmitQuiz(ctx, quiz.ID, []models.QuizAnswer{{QuestionID: 1, SelectedOption: "A"}, {QuestionID: 2, SelectedOption: "B"}})
	if err != nil || score != 2 || quizzes.quizzes[quiz.ID].Score != 2 {
		t.Fatalf("resubmit score = %d (%v), stored %d", score, err, quizzes.quizzes[quiz.ID].Score)
	}
}

func TestQuizServiceSubmitEmpty(t *testing.T) {
	quizzes := newFakeQuizRepo()
	svc := NewQuizService(newFakeQuestionRepo(), quizzes, 15, zerolog.Nop())
	ctx := context.Background()

	quiz, _, err := svc.StartQuiz(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	score, err := svc.SubmitQuiz(ctx, quiz.ID, []models.QuizAnswer{})
	if err != nil || score != 0 {
		t.Fatalf("SubmitQuiz([]) = %d, %v", score, err)
	}
	if _, ok := quizzes.quizzes[quiz.ID]; !ok {
		t.Fatal("quiz row missing")
	}
}

func TestQuizServiceSubmitUnknownQuiz(t *testing.T) {
	svc := NewQuizService(newFakeQuestionRepo(), newFakeQuizRepo(), 15, zerolog.Nop())
	_, err := svc.SubmitQuiz(context.Background(), "missing", []models.QuizAnswer{{QuestionID: 1, SelectedOption: "A"}})
	if !errors.Is(err, apperrors.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizServiceSubmitOnlyUnknownQuestions(t *testing.T) {
	quizzes := newFakeQuizRepo()
	svc := NewQuizService(newFakeQuestionRepo(), quizzes, 15, zerolog.Nop())
	ctx := context.Background()

	quiz, _, err := svc.StartQuiz(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	score, err := svc.SubmitQuiz(ctx, quiz.ID, []models.QuizAnswer{{QuestionID: 77, SelectedOption: "A"}, {QuestionID: 78, SelectedOption: "B"}})
	if err != nil || score != 0 {
		t.Fatalf("SubmitQuiz(unknown ids) = %d, %v", score, err)
	}
	if n := len(quizzes.responses[quiz.ID]); n != 0 {
		t.Fatalf("expected no stored responses, got %d", n)
	}
}

func TestQuizServiceGetQuizIncludesResponses(t *testing.T) {
	questions := newFakeQuestionRepo()
	questions.questions[1] = &models.Question{ID: 1, CorrectOption: "A"}
	quizzes := newFakeQuizRepo()
	svc := NewQuizService(questions, quizzes, 15, zerolog.Nop())
	ctx := context.Background()

	quiz, _, err := svc.StartQuiz(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitQuiz(ctx, quiz.ID, []models.QuizAnswer{{QuestionID: 1, SelectedOption: "A"}}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if got.Score != 1 || len(got.Responses) != 1 || got.Responses[0].SelectedOption != "A" {
		t.Fatalf("unexpected quiz %+v", got)
	}

	if _, err := svc.GetQuiz(ctx, "missing"); !errors.Is(err, apperrors.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizServiceStartUnknownReference(t *testing.T) {
	quizzes := newFakeQuizRepo()
	quizzes.createErr = apperrors.ErrQuizReferenceNotFound
	svc := NewQuizService(newFakeQuestionRepo(), quizzes, 15, zerolog.Nop())

	if _, _, err := svc.StartQuiz(context.Background(), 1, 1); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func newTestAuthService(repo *fakeUserRepo, restrictAdmin bool) AuthService {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test", AccessTokenExp: time.Hour, TokenIssuer: "quizapi"})
	return NewAuthService(repo, auth.NewPasswordHasher(4), jwtSvc, restrictAdmin, zerolog.Nop())
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, false)
	ctx := context.Background()

	id, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "alice", Password: "password1", Email: "Alice@Example.com"}, "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stored := repo.users["alice"]
	if stored.ID != id || stored.Role != models.RoleStudent || stored.Name != "alice" || stored.Email != "alice@example.com" {
		t.Fatalf("unexpected stored user %+v", stored)
	}
	if stored.Password == "password1" {
		t.Fatal("password stored in plaintext")
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.UserID != id || resp.AccessToken == "" || resp.TokenType != "Bearer" || resp.Role != "STUDENT" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong-pass"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "password1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthServiceRegisterConflictsAndValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, false)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "bob", Password: "password1", Email: "bob@example.com", Role: "admin"}, ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if repo.users["bob"].Role != models.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", repo.users["bob"].Role)
	}

	_, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "bob", Password: "password1", Email: "other@example.com"}, "")
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}

	_, err = svc.Register(ctx, &dto.RegisterUserRequest{Username: "carol", Password: "password1", Email: "c@example.com", Role: "teacher"}, "")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}

	_, err = svc.Register(ctx, &dto.RegisterUserRequest{Username: "bad name!", Password: "password1", Email: "d@example.com"}, "")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for bad username, got %v", err)
	}

	longName := strings.Repeat("n", validation.NameMaxLength+1)
	_, err = svc.Register(ctx, &dto.RegisterUserRequest{Name: longName, Username: "dave", Password: "password1", Email: "dave@example.com"}, "")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error for long name, got %v", err)
	}
	if _, ok := repo.users["dave"]; ok {
		t.Fatal("user with an oversized name was stored")
	}
}

func TestAuthServiceRestrictedAdminSignup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, true)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "mallory", Password: "password1", Email: "m@example.com", Role: "ADMIN"}, "")
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for anonymous ADMIN signup, got %v", err)
	}
	if _, ok := repo.users["mallory"]; ok {
		t.Fatal("rejected ADMIN signup was stored")
	}

	_, err = svc.Register(ctx, &dto.RegisterUserRequest{Username: "mallory", Password: "password1", Email: "m@example.com", Role: "ADMIN"}, models.RoleStudent)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for STUDENT caller, got %v", err)
	}

	if _, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "mallory", Password: "password1", Email: "m@example.com"}, ""); err != nil {
		t.Fatalf("STUDENT signup: %v", err)
	}
	if repo.users["mallory"].Role != models.RoleStudent {
		t.Fatalf("role = %s, want STUDENT", repo.users["mallory"].Role)
	}

	if _, err := svc.Register(ctx, &dto.RegisterUserRequest{Username: "second_admin", Password: "password1", Email: "a2@example.com", Role: "ADMIN"}, models.RoleAdmin); err != nil {
		t.Fatalf("ADMIN caller creating ADMIN: %v", err)
	}
	if repo.users["second_admin"].Role != models.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", repo.users["second_admin"].Role)
	}
}

func TestUserServiceGetUsersAndScores(t *testing.T) {
	five := 5
	repo := newFakeUserRepo()
	repo.scores = []models.UserScore{
		{UserID: 1, Name: "A", Username: "a", Score: &five},
		{UserID: 2, Name: "B", Username: "b"},
	}
	got, err := NewUserService(repo).GetUsersAndScores(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || *got[0].Score != 5 || got[1].Score != nil {
		t.Fatalf("unexpected scores %+v", got)
	}
}
