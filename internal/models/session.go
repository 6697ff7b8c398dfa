package models

import "time"

// Session holds the identity and credentials of one logged-in browser
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse is the public view of a session; the bearer token never leaves the server
type SessionResponse struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Landing string `json:"landing"`
}
