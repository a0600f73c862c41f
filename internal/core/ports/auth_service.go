package ports

import "context"

// LoginStatus distinguishes a successful login from an unknown email.
type LoginStatus string

const (
	LoginOK       LoginStatus = "ok"
	LoginNotFound LoginStatus = "not_found"
)

// RegisterResult is returned by a successful registration.
type RegisterResult struct {
	Token string
	User  UserView
}

// LoginResult is returned by Login. Token and User are only set when Status is LoginOK.
type LoginResult struct {
	Status LoginStatus
	Token  string
	User   *UserView
}

type AuthService interface {
	Register(ctx context.Context, email string) (*RegisterResult, error)
	Login(ctx context.Context, email string) (*LoginResult, error)
}
