package models

// User represents a user in the system. Credentials live with the identity provider.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
