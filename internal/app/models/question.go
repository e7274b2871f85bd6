package models

import "time"

// Question is a single quiz item
type Question struct {
	ID            int64     `json:"question_id" db:"question_id"`
	TopicID       int64     `json:"topic_id" db:"topic_id"`
	Text          string    `json:"question_text" db:"question_text"`
	Difficulty    string    `json:"difficulty" db:"difficulty"`
	CorrectOption string    `json:"-" db:"correct_option"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// QuestionView is a question joined with its topic and exam names.
// It never carries the correct option.
type QuestionView struct {
	ID         int64  `json:"question_id"`
	Text       string `json:"question_text"`
	Difficulty string `json:"difficulty"`
	TopicName  string `json:"topic_name"`
	ExamName   string `json:"exam_name"`
}
