package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/tappay/tappay/internal/logger"
	"github.com/tappay/tappay/internal/models"
)

// Error variables for uniqueness violations. Uniqueness is enforced by the
// database indexes, not by a check-then-insert, so concurrent signups cannot
// both slip through.
var (
	ErrHandleTaken = errors.New("handle already taken")
	ErrEmailTaken  = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored record. A unique violation
// on the handle or email index is mapped to the matching sentinel error.
func (r *UserWriteRepository) Save(ctx context.Context, name, handle, email, passwordHash string, profileImg *string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (name, handle, email, password_hash, profile_img)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, name, handle, email, password_hash, profile_img, qr_code_url, created_at
	`
	args := []any{name, handle, email, passwordHash, profileImg}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("users insert",
		"query", strings.Join(strings.Fields(query), " "),
		"handle", handle,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case "users_handle_key":
				return nil, ErrHandleTaken
			case "users_email_key":
				return nil, ErrEmailTaken
			}
		}
		return nil, err
	}

	return &user, nil
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

const userColumns = `user_id, name, handle, email, password_hash, profile_img, qr_code_url, created_at`

// GetByHandle returns the user with the given handle, or nil when absent.
func (r *UserReadRepository) GetByHandle(ctx context.Context, handle string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE handle = $1`
	return r.get(ctx, query, handle)
}

// GetByEmail returns the user with the given email (matched lowercased), or nil when absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.get(ctx, query, strings.ToLower(email))
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

// get runs a single-row user query. Absence is not an error: callers decide
// whether a missing user is a 404 or an auth failure.
func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logger.Log.Infow("users select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
