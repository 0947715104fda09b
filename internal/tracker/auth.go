package tracker

import (
	"context"
	"errors"
	"strings"

	"github.com/simonvc/trackit/internal/session"
)

var ErrMissingCredentials = errors.New("email and password are required")

// Authenticator issues tokens and registers accounts.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, name, email, password string) error
}

// Login obtains a token and stores it in sess.
func Login(ctx context.Context, a Authenticator, sess *session.Session, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	token, err := a.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return sess.Set(token)
}

// Signup registers an account. The user logs in separately afterwards.
func Signup(ctx context.Context, a Authenticator, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return errors.New("name is required")
	}
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	return a.Signup(ctx, name, email, password)
}

// Logout forgets the stored token.
func Logout(sess *session.Session) error {
	return sess.Clear()
}
