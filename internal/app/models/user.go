package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	Email     string    `json:"email" db:"email"`
	Role      RoleType  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserScore pairs a user with the score of their most recent quiz.
// Score is nil when the user has never started a quiz.
type UserScore struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Score    *int   `json:"score"`
}
