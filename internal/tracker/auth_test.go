package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/simonvc/trackit/internal/budget"
)

type fakeAuth struct {
	token     string
	err       error
	signedUp  []string
	loginCall int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.loginCall++
	return f.token, f.err
}

func (f *fakeAuth) Signup(ctx context.Context, name, email, password string) error {
	f.signedUp = append(f.signedUp, email)
	return f.err
}

func TestLoginStoresToken(t *testing.T) {
	sess := newSession(t, "")
	a := &fakeAuth{token: "fresh"}

	if err := Login(context.Background(), a, sess, " me@x.io ", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok, _ := sess.Authorize(); tok != "fresh" {
		t.Errorf("token = %q", tok)
	}
}

func TestLoginFailureLeavesSession(t *testing.T) {
	sess := newSession(t, "")
	a := &fakeAuth{err: budget.ErrRejected}

	if err := Login(context.Background(), a, sess, "me@x.io", "pw"); !errors.Is(err, budget.ErrRejected) {
		t.Errorf("err = %v", err)
	}
	if sess.Authorized() {
		t.Error("session set after failed login")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	a := &fakeAuth{token: "x"}
	if err := Login(context.Background(), a, newSession(t, ""), "", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("err = %v", err)
	}
	if a.loginCall != 0 {
		t.Error("called API with empty email")
	}
}

func TestSignupDoesNotLogIn(t *testing.T) {
	sess := newSession(t, "")
	a := &fakeAuth{}

	if err := Signup(context.Background(), a, "Ana", "ana@x.io", "pw"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if len(a.signedUp) != 1 || sess.Authorized() {
		t.Errorf("signedUp = %v, authorized = %v", a.signedUp, sess.Authorized())
	}
	if err := Signup(context.Background(), a, " ", "ana@x.io", "pw"); err == nil {
		t.Error("expected name error")
	}
}

func TestLogoutClears(t *testing.T) {
	sess := newSession(t, "tok")
	if err := Logout(sess); err != nil {
		t.Fatal(err)
	}
	if sess.Authorized() {
		t.Error("still authorized")
	}
}
