package models

import "time"

// User is a registered account. Email and Username are stored lower-cased
// and are unique across all records.
type User struct {
	ID           string    `bson:"_id" db:"id"`
	Email        string    `bson:"email" db:"email"`
	Username     string    `bson:"username" db:"username"`
	PasswordHash string    `bson:"password" db:"password_hash"`
	CreatedAt    time.Time `bson:"created_at" db:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" db:"updated_at"`
}
