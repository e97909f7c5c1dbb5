package models

// Session is the cached account identity after a successful login. The token
// itself lives in the OS keyring; only non-secret fields are persisted with
// the rest of the app state.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
