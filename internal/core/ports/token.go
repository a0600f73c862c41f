package ports

// TokenPayload is the identity encoded in a bearer token.
type TokenPayload struct {
	UserID string
	Email  string
}

// TokenGenerator issues and verifies signed, time-bounded bearer tokens.
// VerifyToken fails with a domain authentication error for malformed,
// tampered or expired tokens and otherwise returns the payload as issued.
type TokenGenerator interface {
	GenerateToken(payload TokenPayload) (string, error)
	VerifyToken(token string) (TokenPayload, error)
}
