// Package api implements the client for the remote finance REST API,
// the authoritative owner of all transaction records. Every read is a
// wholesale list fetch and every mutation is a single-record call; the
// store layers its refetch discipline on top.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"moneydash/internal/core"
)

// TokenSource supplies the current session token. An empty token sends
// the request unauthenticated; the server will reject it with 401.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, mainly for tests and the
// login flow before a session exists.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client talks to the remote API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a client for the given base URL. tokens may be nil for a
// client that only performs auth calls.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Error is a failed API call: the endpoint, the HTTP status the server
// answered with (0 for transport failures), and the server's message.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// IsAuth reports whether the failure is an authentication one (bad
// credentials, missing token, registration conflict).
func (e *Error) IsAuth() bool {
	return e.Status == http.StatusUnauthorized ||
		e.Status == http.StatusForbidden ||
		e.Status == http.StatusConflict
}

// SignIn exchanges credentials for the user object and bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (User, string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Register creates an account. The caller follows up with SignIn; the
// API does not return a token on registration.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/users", registerRequest{Name: name, Email: email, Password: password}, nil)
}

// ListTransactions fetches the full transaction list for the
// authenticated user. This is the sole read path.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &txs); err != nil {
		return nil, err
	}
	for i := range txs {
		if err := txs[i].NormalizeFromWire(); err != nil {
			return nil, &Error{Op: "GET /transactions", Message: err.Error()}
		}
	}
	return txs, nil
}

// CreateTransaction posts a new record. Bare dates get the fixed
// midday time component so the server's timezone normalization cannot
// shift the calendar day.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) error {
	req.DueDate = core.SafeAPIDate(req.DueDate)
	return c.do(ctx, http.MethodPost, "/transactions", req, nil)
}

// SetPaid toggles a transaction's settlement. The server owns setting
// and clearing payment_date.
func (c *Client) SetPaid(ctx context.Context, id int64, paid bool) error {
	return c.do(ctx, http.MethodPatch, "/transactions/"+strconv.FormatInt(id, 10), setPaidRequest{IsPaid: paid}, nil)
}

// DeleteTransaction removes a record.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "API call",
		"operation", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Message: "decode response: " + err.Error()}
	}
	return nil
}

// serverMessage extracts a human-readable error from the response
// body, falling back to the raw text.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
