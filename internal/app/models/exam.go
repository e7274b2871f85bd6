package models

// ExamName is the display name shared by one or more exams
type ExamName struct {
	ID   int64  `json:"exam_name_id" db:"exam_name_id"`
	Name string `json:"exam_name" db:"exam_name"`
}

// Exam is a named collection of topics
type Exam struct {
	ID         int64 `json:"exam_id" db:"exam_id"`
	ExamNameID int64 `json:"exam_name_id" db:"exam_name_id"`
}

// Topic is a subject grouping of questions belonging to one exam
type Topic struct {
	ID       int64  `json:"topic_id" db:"topic_id"`
	Name     string `json:"topic_name" db:"topic_name"`
	ExamID   int64  `json:"exam_id" db:"exam_id"`
	ExamName string `json:"exam_name" db:"exam_name"` // joined from exam_names
}
