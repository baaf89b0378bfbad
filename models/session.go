package models

import "time"

// Session is the server-side record behind an issued token. A token whose
// session row is gone is rejected even if its signature is still valid, so
// logout kills the session for real.
type Session struct {
	Token     string `gorm:"primaryKey"`
	UserID    uint
	RoleID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}
