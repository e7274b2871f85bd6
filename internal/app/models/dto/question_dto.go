package dto

import "github.com/yigit/quizapi/internal/app/models"

// CreateQuestionRequest is the body of POST /add-question.
// Length limits match validation.QuestionMaxLength and validation.OptionMaxLength.
type CreateQuestionRequest struct {
	TopicID       int64  `json:"topic_id" binding:"required,gt=0"`
	QuestionText  string `json:"question_text" binding:"required,max=2000"`
	Difficulty    string `json:"difficulty" binding:"required,difficulty"`
	CorrectOption string `json:"correct_option" binding:"max=255"`
}

// UpdateQuestionRequest is the body of PUT /update-question/{question_id}.
// CorrectOption is left unchanged when omitted.
type UpdateQuestionRequest struct {
	QuestionText  string  `json:"question_text" binding:"required,max=2000"`
	Difficulty    string  `json:"difficulty" binding:"required,difficulty"`
	CorrectOption *string `json:"correct_option" binding:"omitempty,max=255"`
}

// QuestionResponse acknowledges a question write. Updates echo the stored
// question; its correct option stays hidden.
type QuestionResponse struct {
	Message    string           `json:"message" example:"Question added successfully"`
	QuestionID *int64           `json:"question_id,omitempty" example:"12"`
	Question   *models.Question `json:"question,omitempty"`
}

// RandomQuestionResponse wraps a single random question
type RandomQuestionResponse struct {
	Question models.QuestionView `json:"question"`
}

// RandomQuestionListResponse wraps a list of random questions
type RandomQuestionListResponse struct {
	Questions []models.QuestionView `json:"questions"`
}

// TopicItem is one topic of an exam
type TopicItem struct {
	TopicID   int64  `json:"topic_id"`
	TopicName string `json:"topic_name"`
	ExamName  string `json:"exam_name"`
}

// TopicListResponse wraps the topics of an exam
type TopicListResponse struct {
	Topics []TopicItem `json:"topics"`
}

// NewTopicListResponse maps topic rows to response items
func NewTopicListResponse(topics []models.Topic) TopicListResponse {
	items := make([]TopicItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, TopicItem{TopicID: t.ID, TopicName: t.Name, ExamName: t.ExamName})
	}
	return TopicListResponse{Topics: items}
}
