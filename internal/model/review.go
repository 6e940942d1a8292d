package model

import "time"

// Review models a row in the `reviews` table. Each review belongs to
// exactly one user and one movie, and the pair is unique: a user posts
// at most one review per movie. Likes start at zero and have no
// mutating operation yet.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – author of the review.
//  MovieID   – reviewed movie row.
//  Rating    – numeric rating.
//  Comment   – optional review text.
//  Likes     – like counter, zero on creation.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update (null until first update).
type Review struct {
	ID        uint64     // reviews.id
	UserID    uint64     // reviews.user_id
	MovieID   uint64     // reviews.movie_id
	Rating    float64    // reviews.rating
	Comment   *string    // reviews.comment (nullable)
	Likes     int        // reviews.likes
	CreatedAt time.Time  // reviews.created_at
	UpdatedAt *time.Time // reviews.updated_at (nullable)
}
