package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/services"
	"github.com/yigit/quizapi/internal/middleware"
	"github.com/yigit/quizapi/internal/pkg/helpers"
)

// QuestionController serves random questions, exam topics and question administration
type QuestionController struct {
	questionService services.QuestionService
	maxQuestions    int
}

// NewQuestionController creates a new QuestionController.
// maxQuestions caps limit_end on the random question endpoints.
func NewQuestionController(questionService services.QuestionService, maxQuestions int) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		maxQuestions:    maxQuestions,
	}
}

// GetRandomQuestion returns one random question
// @Summary Get a random question
// @Tags questions
// @Produce json
// @Success 200 {object} dto.RandomQuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /random-question [get]
func (c *QuestionController) GetRandomQuestion(ctx *gin.Context) {
	question, err := c.questionService.GetRandomQuestion(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RandomQuestionResponse{Question: *question})
}

// GetRandomQuestionsByTopic returns random questions of one topic
// @Summary Get random questions by topic
// @Description limit_start is the number of rows skipped, limit_end the number returned
// @Tags questions
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Param limit_start query int false "Offset" default(10)
// @Param limit_end query int false "Count" default(15)
// @Success 200 {object} dto.RandomQuestionListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid topic id or window"
// @Router /random-questions-by-topic/{topic_id} [get]
func (c *QuestionController) GetRandomQuestionsByTopic(ctx *gin.Context) {
	topicID, err := helpers.ParseIDParam(ctx, "topic_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	window, err := helpers.ParseSampleWindow(ctx, c.maxQuestions)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	questions, err := c.questionService.GetRandomQuestionsByTopic(ctx.Request.Context(), topicID, window.Offset, window.Count)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RandomQuestionListResponse{Questions: questions})
}

// GetRandomQuestionsForExam returns random questions across all topics of an exam
// @Summary Get random questions for an exam
// @Tags questions
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param limit_start query int false "Offset" default(10)
// @Param limit_end query int false "Count" default(15)
// @Success 200 {object} dto.RandomQuestionListResponse
// @Router /random-questions-for-exam/{exam_id} [get]
func (c *QuestionController) GetRandomQuestionsForExam(ctx *gin.Context) {
	examID, err := helpers.ParseIDParam(ctx, "exam_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	window, err := helpers.ParseSampleWindow(ctx, c.maxQuestions)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	questions, err := c.questionService.GetRandomQuestionsForExam(ctx.Request.Context(), examID, window.Offset, window.Count)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RandomQuestionListResponse{Questions: questions})
}

// GetTopicsForExam lists the topics of an exam
func (c *QuestionController) GetTopicsForExam(ctx *gin.Context) {
	examID, err := helpers.ParseIDParam(ctx, "exam_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	topics, err := c.questionService.GetTopicsForExam(ctx.Request.Context(), examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewTopicListResponse(topics))
}

// AddQuestion creates a question
// @Summary Add a question
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /add-question [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.questionService.AddQuestion(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.QuestionResponse{
		Message:    "Question added successfully",
		QuestionID: &id,
	})
}

// RemoveQuestion deletes a question
// @Summary Remove a question
// @Tags admin
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /remove-question/{question_id} [delete]
func (c *QuestionController) RemoveQuestion(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "question_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.questionService.RemoveQuestion(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question removed successfully"})
}

// UpdateQuestion replaces the text and difficulty of a question
// @Summary Update a question
// @Tags admin
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /update-question/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "question_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.QuestionResponse{
		Message:    "Question updated successfully",
		QuestionID: &id,
		Question:   question,
	})
}
