package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/services"
	"github.com/yigit/quizapi/internal/middleware"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/helpers"
)

// QuizController handles quiz attempts
type QuizController struct {
	quizService services.QuizService
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService services.QuizService) *QuizController {
	return &QuizController{
		quizService: quizService,
	}
}

// StartQuiz opens a quiz for a user on a topic and returns its questions
// @Summary Start a quiz
// @Tags quizzes
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Param user_id query int true "User ID"
// @Success 201 {object} dto.StartQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid topic or user id"
// @Failure 404 {object} dto.ErrorResponse "User or topic not found"
// @Router /start-quiz/{topic_id} [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	topicID, err := helpers.ParseIDParam(ctx, "topic_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	userID, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("user_id must be a positive integer"))
		return
	}

	quiz, questions, err := c.quizService.StartQuiz(ctx.Request.Context(), userID, topicID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.StartQuizResponse{
		QuizID:    quiz.ID,
		Questions: questions,
	})
}

// SubmitQuiz scores and stores the answers of a quiz
// @Summary Submit a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Param request body []dto.QuizAnswerRequest true "Answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /submit-quiz/{quiz_id} [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID := strings.TrimSpace(ctx.Param("quiz_id"))
	if quizID == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("quiz_id is required"))
		return
	}

	var req []dto.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	score, err := c.quizService.SubmitQuiz(ctx.Request.Context(), quizID, dto.ToQuizAnswers(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SubmitQuizResponse{
		Message: "Quiz submitted successfully",
		Score:   score,
	})
}

// GetQuiz returns a stored quiz attempt
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), ctx.Param("quiz_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.QuizDetailResponse{Quiz: quiz})
}
