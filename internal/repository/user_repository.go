package repository

import (
	"context"
	"database/sql"

	"github.com/Gakshith/finalproject/internal/model"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id,username,email,user_password,full_name,bio,profile_picture,created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Bio, &u.ProfilePicture, &u.CreatedAt)
	return u, err
}

// Create inserts a user with an already-hashed password and returns its ID.
// A collision on username or email maps to ErrUserExists whether it is
// caught here or by the unique constraints.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string, fullName, bio, profilePicture *string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, user_password, full_name, bio, profile_picture) VALUES (?,?,?,?,?,?)",
		username, email, passwordHash, fullName, bio, profilePicture)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UsernameOrEmailTaken reports whether any user already holds the given
// username or email, matched exactly as stored.
func (r *UserRepo) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username=? OR email=? LIMIT 1",
		username, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UsernameTaken reports whether a user other than selfID holds the given
// username. Used for renames, where the caller's own row must not count.
func (r *UserRepo) UsernameTaken(ctx context.Context, username string, selfID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username=? AND id<>? LIMIT 1",
		username, selfID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile overwrites the mutable profile columns of a user. The
// password and email never change through this path. A username collision
// maps to ErrUsernameTaken.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, username string, fullName, bio, profilePicture *string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET username=?, full_name=?, bio=?, profile_picture=? WHERE id=?",
		username, fullName, bio, profilePicture, id)
	if err != nil && isDuplicate(err) {
		return ErrUsernameTaken
	}
	return err
}
