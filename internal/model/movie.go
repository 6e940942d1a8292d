package model

import "time"

// Movie is a per-user copy of an external catalog entry, stored in the
// `movies` table. A given catalog id may appear once per user; two
// different users may each attach the same catalog movie. Rows are
// immutable after insertion apart from the cascading relation to
// reviews.
//
// Fields:
//  ID         – primary key identifier of the movie row.
//  UserID     – owner of this copy; nullable in the schema.
//  ExternalID – catalog identifier (TMDb id as a string).
//  Title      – movie title as returned by the catalog.
//  Year       – release year parsed from the catalog release date.
//  PosterURL  – full poster image URL, when the catalog provides one.
//  Overview   – catalog synopsis text.
//  Genres     – comma-joined genre names.
//  CreatedAt  – timestamp of insertion.
type Movie struct {
	ID         uint64    // movies.id
	UserID     *uint64   // movies.user_id (nullable)
	ExternalID string    // movies.external_id
	Title      string    // movies.title
	Year       *int      // movies.year (nullable)
	PosterURL  *string   // movies.poster_url (nullable)
	Overview   *string   // movies.overview (nullable)
	Genres     *string   // movies.genres (nullable)
	CreatedAt  time.Time // movies.created_at
}
