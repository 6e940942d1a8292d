package model

import "time"

// User represents an application user record as stored in the
// `users` table. Nullable columns map to pointer fields so that a
// missing value is distinguishable from an empty string. The json
// tags are omitted here because these structs are primarily used
// internally by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Username       – unique login name, the JWT subject.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password; never serialized.
//  FullName       – optional display name.
//  Bio            – optional free-form profile text.
//  ProfilePicture – optional URL of the profile image.
//  CreatedAt      – timestamp of creation.
type User struct {
	ID             uint64    // users.id
	Username       string    // users.username
	Email          string    // users.email
	PasswordHash   string    // users.user_password
	FullName       *string   // users.full_name (nullable)
	Bio            *string   // users.bio (nullable)
	ProfilePicture *string   // users.profile_picture (nullable)
	CreatedAt      time.Time // users.created_at
}
