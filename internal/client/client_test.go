package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestLoginReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			t.Errorf("body = %v", body)
		}
		w.Write([]byte(`{"token":"t-1"}`))
	})

	tok, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok != "t-1" {
		t.Errorf("token = %q", tok)
	}
}

func TestLoginRejectedUsesDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "bad")
	if !errors.Is(err, budget.ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	if errors.Is(err, budget.ErrUnauthorized) {
		t.Error("login failure must not be treated as a session failure")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLoginFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`oops`))
	})

	_, err := c.Login(context.Background(), "a@b.c", "bad")
	if err == nil || err.Error() != MsgLoginFailed {
		t.Errorf("err = %v, want %q", err, MsgLoginFailed)
	}
}

func TestSignupValidationListDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`))
	})

	err := c.Signup(context.Background(), "n", "bad", "pw")
	if !errors.Is(err, budget.ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	if err.Error() != "value is not a valid email address" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestSignupServerDown(t *testing.T) {
	c := New("http://127.0.0.1:1")
	err := c.Signup(context.Background(), "n", "e", "p")
	if !errors.Is(err, budget.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if err.Error() != MsgSignupFailed {
		t.Errorf("message = %q, want fallback", err.Error())
	}
}

func TestListTransactionsSendsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions" || r.URL.Query().Get("token") != "tok" {
			t.Errorf("got %s", r.URL)
		}
		w.Write([]byte(`[{"id":1,"amount":100,"type":"income","category":"Salary","date":"2024-01-01"},
			{"id":2,"amount":40,"type":"expense","category":"Food","date":"2024-01-02","note":"lunch"}]`))
	})

	txns, err := c.ListTransactions(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("len = %d", len(txns))
	}
	if !txns[1].Amount.Equal(decimal.NewFromInt(40)) || txns[1].Note != "lunch" {
		t.Errorf("txns[1] = %+v", txns[1])
	}
}

func TestListTransactionsNullIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})
	txns, err := c.ListTransactions(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if txns == nil || len(txns) != 0 {
		t.Errorf("txns = %#v, want empty slice", txns)
	}
}

func TestTransactionsStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, budget.ErrUnauthorized},
		{http.StatusForbidden, budget.ErrUnavailable},
		{http.StatusInternalServerError, budget.ErrUnavailable},
		{http.StatusBadGateway, budget.ErrUnavailable},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"detail":"nope"}`))
		})

		_, err := c.ListTransactions(context.Background(), "tok")
		if !errors.Is(err, tt.want) {
			t.Errorf("list %d: err = %v, want %v", tt.status, err, tt.want)
		}
		err = c.CreateTransaction(context.Background(), "tok", &budget.Transaction{ID: 1})
		if !errors.Is(err, tt.want) {
			t.Errorf("create %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestCreateTransactionBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Query().Get("token") != "tok" {
			t.Errorf("got %s %s", r.Method, r.URL)
		}
		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["amount"] != 12.5 || got["type"] != "expense" || got["category"] != "Food" {
			t.Errorf("body = %v", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
	})

	txn := &budget.Transaction{
		ID:       1718000000000,
		Amount:   decimal.RequireFromString("12.5"),
		Type:     budget.TypeExpense,
		Category: "Food",
		Date:     "2024-06-10",
	}
	if err := c.CreateTransaction(context.Background(), "tok", txn); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
}

func TestCreateTransactionFailureMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := c.CreateTransaction(context.Background(), "tok", &budget.Transaction{ID: 1})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Status != 500 || apiErr.Error() != MsgAddFailed {
		t.Errorf("apiErr = %+v", apiErr)
	}
}
