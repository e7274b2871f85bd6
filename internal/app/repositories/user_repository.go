package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/dberrors"
	"github.com/yigit/quizapi/internal/pkg/logger"
)

// Unique constraints declared on the users table
const (
	usersUsernameKey = "users_username_key"
	usersEmailKey    = "users_email_key"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a user whose password is already hashed and returns the new id.
// Duplicate usernames and emails are reported by the database constraints.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "username", "password", "email", "role").
		Values(user.Name, user.Username, user.Password, user.Email, string(user.Role)).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, usersUsernameKey):
			return 0, apperrors.ErrUsernameAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, usersEmailKey):
			return 0, apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, ""):
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByUsername retrieves a user, including the password hash, by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select("user_id", "name", "username", "password", "email", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Name, &user.Username, &user.Password, &user.Email, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by username: %w", err)
	}
	user.Role = models.RoleType(role)

	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// GetAllUsersWithLatestScore returns every user exactly once, paired with the score of
// their most recently started quiz. Users without quizzes carry a nil score.
func (r *UserRepository) GetAllUsersWithLatestScore(ctx context.Context) ([]models.UserScore, error) {
	sql, args, err := r.sb.Select("u.user_id", "u.name", "u.username", "latest.score").
		From("users u").
		JoinClause(`LEFT JOIN LATERAL (
			SELECT q.score FROM quizzes q
			WHERE q.user_id = u.user_id
			ORDER BY q.started_at DESC, q.quiz_id DESC
			LIMIT 1
		) latest ON TRUE`).
		OrderBy("u.user_id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building users with scores SQL")
		return nil, fmt.Errorf("failed to build users with scores query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing users with scores query")
		return nil, fmt.Errorf("error querying users with scores: %w", err)
	}
	defer rows.Close()

	result := []models.UserScore{}
	for rows.Next() {
		var us models.UserScore
		if err := rows.Scan(&us.UserID, &us.Name, &us.Username, &us.Score); err != nil {
			return nil, fmt.Errorf("error scanning user score row: %w", err)
		}
		result = append(result, us)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user score rows: %w", err)
	}

	return result, nil
}
