package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moneydash/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, StaticToken("tok-123"), 5*time.Second)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte("[]"))
	})

	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatalf("missing X-Request-ID")
	}
}

func TestEmptyTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""), time.Second)
	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestCreateTransactionSafeDate(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := c.CreateTransaction(context.Background(), CreateTransactionRequest{
		CategoryID:  3,
		Description: "Rent",
		Amount:      core.Money{Cents: 120000},
		DueDate:     "2026-09-05",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if body["dueDate"] != "2026-09-05T12:00:00" {
		t.Fatalf("dueDate = %v", body["dueDate"])
	}
	if body["amount"] != 1200.00 {
		t.Fatalf("amount = %v", body["amount"])
	}
}

func TestListDecodesWireFormat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{
			"id": 7,
			"description": "Rent",
			"amount": 1200.5,
			"type": "expense",
			"category_id": 3,
			"category_name": "Housing",
			"due_date": "2026-09-05T12:00:00",
			"payment_date": null
		}]`))
	})

	txs, err := c.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("len = %d", len(txs))
	}
	tx := txs[0]
	if tx.ID != 7 || tx.Amount.Cents != 120050 || tx.Type != core.Expense || tx.Settled() {
		t.Fatalf("decoded: %+v", tx)
	}
}

func TestSignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"Ana","email":"ana@example.com"},"token":"jwt-abc"}`))
	})

	user, token, err := c.SignIn(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Name != "Ana" || token != "jwt-abc" {
		t.Fatalf("got user=%+v token=%q", user, token)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	})

	_, _, err := c.SignIn(context.Background(), "x", "y")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if !apiErr.IsAuth() || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("error: %+v", apiErr)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestSetPaidAndDeletePaths(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.SetPaid(context.Background(), 42, true); err != nil {
		t.Fatalf("set paid: %v", err)
	}
	if err := c.DeleteTransaction(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{"PATCH /transactions/42", "DELETE /transactions/42"}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}
