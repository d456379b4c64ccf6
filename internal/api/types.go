// Package api holds the request and response bodies exchanged over the REST surface.
package api

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the public view of a registered user.
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

// EntryRequest is the body of POST /api/entries and PUT /api/entries/:id.
type EntryRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"omitempty,max=50,dive,max=100"`
}

// Entry is an entry as rendered to clients. Tags is never null.
type Entry struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryResponse wraps a single entry for GET /api/entries/:id.
type EntryResponse struct {
	Entry Entry `json:"entry"`
}

// EntryMutationResponse is returned by create and update.
type EntryMutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Entry   Entry  `json:"entry"`
}

// EntryListResponse is one page of entries.
type EntryListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
}

// TagListResponse lists a user's tags ordered by frequency.
type TagListResponse struct {
	Tags   []string         `json:"tags"`
	Counts map[string]int64 `json:"counts"`
}

// HealthResponse is returned by the liveness endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
