package domain

import "time"

// Session is the server-side state referenced by the admin cookie. It is
// ephemeral: the session store owns its lifetime, callers only read it.
type Session struct {
	Token     string    `json:"token"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired() bool {
	return !time.Now().Before(s.ExpiresAt)
}
