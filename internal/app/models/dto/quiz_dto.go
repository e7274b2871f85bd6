package dto

import "github.com/yigit/quizapi/internal/app/models"

// QuizAnswerRequest is one element of the POST /submit-quiz body
type QuizAnswerRequest struct {
	QuestionID     int64  `json:"question_id" binding:"required,gt=0"`
	SelectedOption string `json:"selected_option" binding:"max=255"`
}

// StartQuizResponse returns the new quiz id and its questions
type StartQuizResponse struct {
	QuizID    string                `json:"quiz_id" example:"3f1c2b9e-8a47-4d0a-9a34-0d6f1f7a2b11"`
	Questions []models.QuestionView `json:"questions"`
}

// SubmitQuizResponse reports the computed score
type SubmitQuizResponse struct {
	Message string `json:"message" example:"Quiz submitted successfully"`
	Score   int    `json:"score" example:"7"`
}

// QuizDetailResponse wraps a stored quiz row
type QuizDetailResponse struct {
	Quiz *models.Quiz `json:"quiz"`
}

// ToQuizAnswers converts request items into domain answers, keeping order
func ToQuizAnswers(items []QuizAnswerRequest) []models.QuizAnswer {
	answers := make([]models.QuizAnswer, 0, len(items))
	for _, it := range items {
		answers = append(answers, models.QuizAnswer{QuestionID: it.QuestionID, SelectedOption: it.SelectedOption})
	}
	return answers
}
