package dto

import "github.com/yigit/quizapi/internal/app/models"

// UserScoreListResponse wraps every user with their latest score
type UserScoreListResponse struct {
	UsersScores []models.UserScore `json:"users_scores"`
}
