package entity

import "time"

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserLoginData is the identity the token middleware stores in fiber locals.
type UserLoginData struct {
	ID        string
	Username  string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
