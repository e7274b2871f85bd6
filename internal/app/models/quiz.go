package models

import "time"

// Quiz is one attempt by a user on a topic
type Quiz struct {
	ID          string     `json:"quiz_id" db:"quiz_id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	TopicID     int64      `json:"topic_id" db:"topic_id"`
	Score       int        `json:"score" db:"score"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`

	Responses []QuizAnswer `json:"responses,omitempty" db:"-"`
}

// QuizAnswer is one submitted answer within a quiz attempt
type QuizAnswer struct {
	QuestionID     int64  `json:"question_id" db:"question_id"`
	SelectedOption string `json:"selected_option" db:"selected_option"`
}
