package repository

import (
	"context"
	"database/sql"

	"github.com/Gakshith/finalproject/internal/model"
)

// MovieRepo provides lookups and inserts for per-user movie rows. Movies
// are immutable after insertion, so there is no update path. The compound
// (user_id, external_id) unique key makes the attach operation idempotent
// per user while still letting different users attach the same catalog
// entry.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = "id,user_id,external_id,title,year,poster_url,overview,genres,created_at"

func scanMovie(row *sql.Row) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.UserID, &m.ExternalID, &m.Title,
		&m.Year, &m.PosterURL, &m.Overview, &m.Genres, &m.CreatedAt)
	return m, err
}

// GetByExternalID fetches the caller's copy of a catalog movie.
func (r *MovieRepo) GetByExternalID(ctx context.Context, userID uint64, externalID string) (model.Movie, error) {
	return scanMovie(r.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE user_id=? AND external_id=? LIMIT 1",
		userID, externalID))
}

// GetOwnedByID fetches a movie row by id, scoped to its owner. A row owned
// by someone else surfaces as sql.ErrNoRows, indistinguishable from a
// missing row.
func (r *MovieRepo) GetOwnedByID(ctx context.Context, userID, id uint64) (model.Movie, error) {
	return scanMovie(r.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? AND user_id=? LIMIT 1",
		id, userID))
}

// Create inserts a movie row and returns its ID. A duplicate
// (user_id, external_id) pair maps to ErrMovieExists.
func (r *MovieRepo) Create(ctx context.Context, m model.Movie) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (user_id, external_id, title, year, poster_url, overview, genres) VALUES (?,?,?,?,?,?,?)",
		m.UserID, m.ExternalID, m.Title, m.Year, m.PosterURL, m.Overview, m.Genres)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrMovieExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
