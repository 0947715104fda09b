package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/simonvc/trackit/internal/budget"
)

// User-facing fallbacks when the server gives no detail.
const (
	MsgLoginFailed  = "Login failed. Please check your details."
	MsgSignupFailed = "Signup failed. Please try again."
	MsgLoadFailed   = "Could not load transactions."
	MsgAddFailed    = "Could not add transaction."
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var result loginResponse
	if err := c.post(ctx, "/login", nil, body, &result); err != nil {
		return "", authError(err, MsgLoginFailed)
	}
	if result.Token == "" {
		return "", &APIError{Status: http.StatusOK, Detail: MsgLoginFailed, Kind: budget.ErrRejected}
	}
	return result.Token, nil
}

// Signup registers a new account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.post(ctx, "/signup", nil, body, nil); err != nil {
		return authError(err, MsgSignupFailed)
	}
	return nil
}

func (c *Client) ListTransactions(ctx context.Context, token string) ([]budget.Transaction, error) {
	var result []budget.Transaction
	if err := c.get(ctx, "/transactions", tokenParams(token), &result); err != nil {
		return nil, dataError(err, MsgLoadFailed)
	}
	if result == nil {
		result = []budget.Transaction{}
	}
	return result, nil
}

func (c *Client) CreateTransaction(ctx context.Context, token string, txn *budget.Transaction) error {
	if err := c.post(ctx, "/transactions", tokenParams(token), txn, nil); err != nil {
		return dataError(err, MsgAddFailed)
	}
	return nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func tokenParams(token string) url.Values {
	params := url.Values{}
	params.Set("token", token)
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint(path, params), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(path, params), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

func (c *Client) endpoint(path string, params url.Values) string {
	if len(params) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + params.Encode()
}

// statusError is a non-2xx response before it is classified per endpoint.
type statusError struct {
	status int
	detail string
}

func (e *statusError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("server error (%d): %s", e.status, e.detail)
	}
	return fmt.Sprintf("server error (%d)", e.status)
}

func (c *Client) doRequest(req *http.Request, result any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &statusError{status: resp.StatusCode, detail: parseDetail(bodyBytes)}
	}

	if result != nil && len(bytes.TrimSpace(bodyBytes)) > 0 {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// parseDetail pulls a human message out of an error body. FastAPI style backends
// answer {"detail": "..."}; validation failures may carry a list of {"msg": "..."}.
func parseDetail(body []byte) string {
	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) != nil {
		return ""
	}
	if len(apiErr.Detail) > 0 {
		var s string
		if json.Unmarshal(apiErr.Detail, &s) == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(apiErr.Detail, &items) == nil && len(items) > 0 {
			return items[0].Msg
		}
	}
	return apiErr.Error
}

// authError classifies failures of /login and /signup. Any client error is a
// rejection of the input; the server's detail wins over the fallback message.
func authError(err error, fallback string) error {
	var se *statusError
	if !errors.As(err, &se) {
		return &APIError{Detail: fallback, Kind: budget.ErrUnavailable, Err: err}
	}
	apiErr := &APIError{Status: se.status, Detail: se.detail, Kind: budget.ErrRejected}
	if se.status >= 500 {
		apiErr.Kind = budget.ErrUnavailable
	}
	if apiErr.Detail == "" {
		apiErr.Detail = fallback
	}
	return apiErr
}

// dataError classifies failures of /transactions: 401 ends the session, everything
// else is reported with the generic message.
func dataError(err error, fallback string) error {
	var se *statusError
	if !errors.As(err, &se) {
		return &APIError{Detail: fallback, Kind: budget.ErrUnavailable, Err: err}
	}
	if se.status == http.StatusUnauthorized {
		return &APIError{Status: se.status, Detail: se.detail, Kind: budget.ErrUnauthorized}
	}
	return &APIError{Status: se.status, Detail: fallback, Kind: budget.ErrUnavailable, Err: se}
}
