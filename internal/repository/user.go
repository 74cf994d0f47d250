package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopmate/shopmate-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, name, email, password_hash, phone, address, security_answer, role, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// Email uniqueness is enforced by the unique index on users.email; a losing
// concurrent insert surfaces as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (name, email, password_hash, phone, address, security_answer, role)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Phone, user.Address, user.SecurityAnswer, user.Role,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.queryOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.queryOne(ctx, query, id)
}

// GetByEmailAndAnswer retrieves a user matching both the email and the
// security-question answer. Used only by the password-reset flow; a miss on
// either column is indistinguishable from the other.
func (r *UserRepository) GetByEmailAndAnswer(ctx context.Context, email, answer string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND security_answer = ?`
	return r.queryOne(ctx, query, email, answer)
}

// Update applies a partial update to the user row. Only non-nil fields of
// upd are written; passing an empty update is a caller bug and returns
// ErrUserNotFound in the absence of affected rows.
func (r *UserRepository) Update(ctx context.Context, id int64, upd model.UserUpdate) error {
	query, args := buildUserUpdate(id, upd)
	if query == "" {
		return nil
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword overwrites the stored password hash for the user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.Update(ctx, id, model.UserUpdate{PasswordHash: &passwordHash})
}

// buildUserUpdate renders upd into an UPDATE statement with placeholders.
// Returns an empty query when upd has no fields set.
func buildUserUpdate(id int64, upd model.UserUpdate) (string, []any) {
	var sets []string
	var args []any

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *upd.Address)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}

	if len(sets) == 0 {
		return "", nil
	}

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	return query, args
}

func (r *UserRepository) queryOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.Address, &user.SecurityAnswer, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
