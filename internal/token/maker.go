package token

import (
	"time"
)

// Maker is an interface for managing tokens.
// Access tokens are issued by the PLG backend; this service only needs to verify them,
// CreateToken exists for local tooling and tests.
type Maker interface {
	CreateToken(userID string, duration time.Duration) (token string, payload *Payload, err error)
	VerifyToken(tokenString string) (payload *Payload, err error)
}
