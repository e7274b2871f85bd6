package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/services"
	"github.com/yigit/quizapi/internal/middleware"
)

// AuthController handles registration and login
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a user account. Role defaults to STUDENT. When admin routes are protected, only an ADMIN bearer may create ADMIN accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "User registration information"
// @Success 201 {object} dto.RegisterUserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or invalid role"
// @Failure 403 {object} dto.ErrorResponse "ADMIN accounts require an ADMIN caller"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	// set only when an authenticated caller is registering someone
	requesterRole := models.RoleType(ctx.GetString(middleware.ContextRole))

	userID, err := c.authService.Register(ctx.Request.Context(), &req, requesterRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterUserResponse{
		Message: "User registered successfully",
		UserID:  &userID,
	})
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
