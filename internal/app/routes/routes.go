package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/app/controllers"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Health   *controllers.HealthController
	Question *controllers.QuestionController
	Quiz     *controllers.QuizController
	User     *controllers.UserController
	Auth     *controllers.AuthController
}

// Options tunes route protection
type Options struct {
	// ProtectAdminRoutes puts question administration and users-and-scores behind an ADMIN token
	ProtectAdminRoutes bool
	AuthMiddleware     *middleware.AuthMiddleware
	MetricsHandler     gin.HandlerFunc
}

// SetupRouter configures all application routes at the root path
func SetupRouter(router gin.IRouter, ctrl Controllers, opts Options) {
	router.GET("/", ctrl.Health.Root)
	router.GET("/health", ctrl.Health.Health)
	if opts.MetricsHandler != nil {
		router.GET("/metrics", opts.MetricsHandler)
	}

	// --- Public quiz content ---
	router.GET("/random-question", ctrl.Question.GetRandomQuestion)
	router.GET("/random-questions-by-topic/:topic_id", ctrl.Question.GetRandomQuestionsByTopic)
	router.GET("/random-questions-for-exam/:exam_id", ctrl.Question.GetRandomQuestionsForExam)
	router.GET("/topics-for-exam/:exam_id", ctrl.Question.GetTopicsForExam)

	// --- Quiz attempts ---
	router.POST("/start-quiz/:topic_id", ctrl.Quiz.StartQuiz)
	router.POST("/submit-quiz/:quiz_id", ctrl.Quiz.SubmitQuiz)
	router.GET("/quizzes/:quiz_id", ctrl.Quiz.GetQuiz)

	protect := opts.ProtectAdminRoutes && opts.AuthMiddleware != nil

	// --- Auth ---
	if protect {
		// the caller's role decides whether an ADMIN account may be created
		router.POST("/register", opts.AuthMiddleware.OptionalJWTAuth(), ctrl.Auth.Register)
	} else {
		router.POST("/register", ctrl.Auth.Register)
	}
	router.POST("/login", ctrl.Auth.Login)

	// --- Admin ---
	admin := router.Group("")
	if protect {
		admin.Use(opts.AuthMiddleware.JWTAuth(), opts.AuthMiddleware.RoleRequired(string(models.RoleAdmin)))
	}
	{
		admin.POST("/add-question", ctrl.Question.AddQuestion)
		admin.DELETE("/remove-question/:question_id", ctrl.Question.RemoveQuestion)
		admin.PUT("/update-question/:question_id", ctrl.Question.UpdateQuestion)
		admin.GET("/users-and-scores", ctrl.User.GetUsersAndScores)
	}
}
