package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/services"
	"github.com/yigit/quizapi/internal/middleware"
)

// UserController handles user listings
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetUsersAndScores lists every user with the score of their latest quiz
// @Summary List users and scores
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserScoreListResponse
// @Router /users-and-scores [get]
func (c *UserController) GetUsersAndScores(ctx *gin.Context) {
	scores, err := c.userService.GetUsersAndScores(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserScoreListResponse{UsersScores: scores})
}
