package services

import "github.com/yigit/quizapi/internal/app/models"

// CalculateScore counts the answers whose selected option exactly matches the
// correct option in answerKey. Answers for questions missing from the key are
// skipped, and a question answered twice is counted twice.
func CalculateScore(answers []models.QuizAnswer, answerKey map[int64]string) int {
	score := 0
	for _, a := range answers {
		correct, ok := answerKey[a.QuestionID]
		if !ok {
			continue
		}
		if a.SelectedOption == correct {
			score++
		}
	}
	return score
}

// questionIDs returns the question id of every answer, in order
func questionIDs(answers []models.QuizAnswer) []int64 {
	ids := make([]int64, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	return ids
}

// knownAnswers keeps the answers whose question exists in answerKey, preserving order
func knownAnswers(answers []models.QuizAnswer, answerKey map[int64]string) []models.QuizAnswer {
	known := make([]models.QuizAnswer, 0, len(answers))
	for _, a := range answers {
		if _, ok := answerKey[a.QuestionID]; ok {
			known = append(known, a)
		}
	}
	return known
}
