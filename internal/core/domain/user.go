package domain

import "time"

// User is an account that owns tasks. It is never mutated after construction.
type User struct {
	id        UserID
	email     Email
	createdAt time.Time
}

// NewUser builds a user with a fresh id, stamped with the current time.
func NewUser(email Email) *User {
	return &User{
		id:        NewUserID(),
		email:     email,
		createdAt: stamp(),
	}
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(id UserID, email Email, createdAt time.Time) *User {
	return &User{id: id, email: email, createdAt: createdAt}
}

func (u *User) ID() UserID           { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
