// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. Uniqueness violations are mapped
// here because the database constraint is the authoritative defense
// against races: an existence pre-check in a handler can miss a
// concurrent insert, and the constraint must still fail the duplicate.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrUserExists is returned when a signup collides with an existing
// username or email.
var ErrUserExists = errors.New("username or email already exists")

// ErrUsernameTaken is returned when a profile rename targets a username
// owned by another user.
var ErrUsernameTaken = errors.New("username already taken")

// ErrMovieExists is returned when a user already attached a catalog movie.
var ErrMovieExists = errors.New("movie already attached")

// ErrReviewExists is returned when a user already reviewed a movie.
var ErrReviewExists = errors.New("review already exists")

// isDuplicate reports whether err is a unique-constraint violation.
// MySQL surfaces these as error 1062; the string fallback covers other
// database/sql drivers used in tests.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
