package uuidx

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new UUID using the version 7 format and returns it.
// It panics if the UUID generation fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString generates a new UUID using the version 7 format and returns it as a string.
// It utilizes the New function to create the UUID and then converts it to a string.
func NewString() string {
	return New().String()
}

// NewHex returns a new version 7 UUID as a bare hex string, without dashes.
// Command identifiers use this form so an id stays a single token inside
// native binding scripts.
func NewHex() string {
	return strings.ReplaceAll(NewString(), "-", "")
}
