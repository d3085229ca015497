package models

// SessionIdentity is the authenticated identity a session token resolves to.
type SessionIdentity struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
}
