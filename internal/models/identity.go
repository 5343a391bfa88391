package models

import "strings"

// Identity is the record whose presence means a device is signed in.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewIdentity derives the display name from the local part of the email.
func NewIdentity(email string) Identity {
	email = strings.TrimSpace(email)
	name := email
	if at := strings.Index(email, "@"); at >= 0 {
		name = email[:at]
	}
	if name == "" {
		name = "Learner"
	}
	return Identity{Email: email, Name: name}
}
