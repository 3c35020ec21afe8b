package utils

import "github.com/google/uuid"

// GenerateUserID returns a new user identifier.
func GenerateUserID() string {
	return uuid.NewString()
}

// GenerateID returns a new document identifier for activities and sessions.
func GenerateID() string {
	return uuid.NewString()
}
