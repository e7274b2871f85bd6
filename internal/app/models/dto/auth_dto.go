package dto

// RegisterUserRequest is the body of POST /register.
// Length limits match the constants in the validation package.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// RegisterUserResponse acknowledges a registration
type RegisterUserResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	UserID  *int64 `json:"user_id,omitempty" example:"5"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Message     string `json:"message" example:"Login successful"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role" example:"STUDENT"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}
