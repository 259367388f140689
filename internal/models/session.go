package models

import "time"

// Session is a bearer-token login. Logout flips IsAuthenticated instead of
// deleting the row, so the sessions table doubles as an audit trail.
type Session struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	SessionToken    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_token"`
	IsAuthenticated bool      `gorm:"not null;default:true" json:"is_authenticated"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `gorm:"not null" json:"expires_at"`
}

// ValidAt reports whether the session authorizes requests at the given time.
func (s *Session) ValidAt(now time.Time) bool {
	return s.IsAuthenticated && !s.ExpiresAt.Before(now)
}
