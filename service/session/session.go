package session

import (
	"context"
	"crypto/subtle"

	"lending/core"
)

// New new session resolving access tokens from a static token -> user table
func New(tokens map[string]string) core.Session {
	s := &session{tokens: make(map[string]string, len(tokens))}
	for token, userID := range tokens {
		if token != "" && userID != "" {
			s.tokens[token] = userID
		}
	}

	return s
}

type session struct {
	tokens map[string]string
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	if accessToken == "" {
		return nil, core.ErrUnauthorized
	}

	for token, userID := range s.tokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(accessToken)) == 1 {
			return &core.User{ID: userID}, nil
		}
	}

	return nil, core.ErrUnauthorized
}
