package dto

import "time"

// ContactRequest payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactMessageResponse represents a stored contact message.
type ContactMessageResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// StatsResponse is the dashboard counter snapshot.
type StatsResponse struct {
	Users    int64 `json:"users"`
	Orders   int64 `json:"orders"`
	Messages int64 `json:"messages"`
	Active   int64 `json:"active"`
	Cars     int64 `json:"cars"`
}
