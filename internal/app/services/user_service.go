package services

import (
	"context"
	"fmt"

	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/repositories"
)

// UserService defines the interface for user listing operations
type UserService interface {
	GetUsersAndScores(ctx context.Context) ([]models.UserScore, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

// GetUsersAndScores lists every user with the score of their latest quiz
func (s *userServiceImpl) GetUsersAndScores(ctx context.Context) ([]models.UserScore, error) {
	scores, err := s.userRepo.GetAllUsersWithLatestScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users and scores: %w", err)
	}
	return scores, nil
}
