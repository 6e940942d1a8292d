package repository

import (
	"context"
	"database/sql"

	"github.com/Gakshith/finalproject/internal/model"
)

// ReviewRepo provides CRUD operations for reviews. A review is keyed by
// its (user_id, movie_id) pair for every caller-facing operation; the
// numeric primary key only appears once the pair has been resolved.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = "id,user_id,movie_id,rating,comment,likes,created_at,updated_at"

func scanReview(row *sql.Row) (model.Review, error) {
	var v model.Review
	err := row.Scan(&v.ID, &v.UserID, &v.MovieID, &v.Rating,
		&v.Comment, &v.Likes, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// GetByUserAndMovie fetches the single review a user wrote for a movie.
func (r *ReviewRepo) GetByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id=? AND movie_id=? LIMIT 1",
		userID, movieID))
}

// ListByMovie returns all reviews for a movie, most recent first. The id
// tiebreak keeps the order stable when two reviews share a timestamp.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE movie_id=? ORDER BY created_at DESC, id DESC",
		movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Review, 0)
	for rows.Next() {
		var v model.Review
		if err := rows.Scan(&v.ID, &v.UserID, &v.MovieID, &v.Rating,
			&v.Comment, &v.Likes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a review with likes initialized to zero and returns its
// ID. A duplicate (user_id, movie_id) pair maps to ErrReviewExists even
// when an application-level existence check raced and missed.
func (r *ReviewRepo) Create(ctx context.Context, userID, movieID uint64, rating float64, comment *string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, movie_id, rating, comment, likes) VALUES (?,?,?,?,0)",
		userID, movieID, rating, comment)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrReviewExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites rating and comment of a review by primary key. Likes
// and the movie relation are never touched here.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, rating float64, comment *string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		rating, comment, id)
	return err
}

// Delete removes a review by primary key.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	return err
}
