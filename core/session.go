package core

import (
	"context"
)

// Session user session
type Session interface {
	// Login resolve the caller of an access token
	Login(ctx context.Context, accessToken string) (*User, error)
}
