package domain

import "time"

// Session is an authenticated user session. A session only exists while
// its owner is logged in; logout deletes it.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
