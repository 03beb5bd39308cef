package api

import "moneydash/internal/core"

// User is the account object returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateTransactionRequest is the POST /transactions payload. Field
// names follow the API's camelCase request convention (responses use
// snake_case; the asymmetry is the server's).
type CreateTransactionRequest struct {
	CategoryID   int        `json:"categoryId"`
	Description  string     `json:"description"`
	Amount       core.Money `json:"amount"`
	DueDate      string     `json:"dueDate"`
	Installments int        `json:"installments,omitempty"`
	IsPaid       bool       `json:"isPaid"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type setPaidRequest struct {
	IsPaid bool `json:"isPaid"`
}
