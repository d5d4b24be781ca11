package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// Create inserts a user with a freshly hashed password and returns its ID.
// Duplicate username and email are reported as distinct sentinel errors.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, r.classifyDuplicate(ctx, username, email)
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// classifyDuplicate decides which unique constraint a failed insert hit.
// The driver error only carries the MySQL key name, so probe the table.
func (r *UserRepo) classifyDuplicate(ctx context.Context, username, email string) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=?", username).Scan(&n); err == nil && n > 0 {
		return ErrUsernameExists
	}
	return ErrEmailExists
}

// GetByIdentifier fetches a user by username or email, matching the
// login contract where either works as the identifier.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,role,created_at FROM users WHERE username=? OR email=? LIMIT 1",
		identifier, strings.ToLower(identifier)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,role,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// UpdateProfile changes the username and/or email of a user.  Nil fields
// are left untouched.  Uniqueness violations surface as the same
// sentinel errors Create returns.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, username, email *string) (model.User, error) {
	if username != nil {
		v := strings.TrimSpace(*username)
		if _, err := r.DB.ExecContext(ctx, "UPDATE users SET username=? WHERE id=?", v, id); err != nil {
			if isDuplicateKey(err) {
				return model.User{}, ErrUsernameExists
			}
			return model.User{}, err
		}
	}
	if email != nil {
		v := strings.ToLower(strings.TrimSpace(*email))
		if _, err := r.DB.ExecContext(ctx, "UPDATE users SET email=? WHERE id=?", v, id); err != nil {
			if isDuplicateKey(err) {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}
