package id

import (
	"strings"

	"github.com/google/uuid"
)

// GetUUID generates a new random UUID string.
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a new UUID with the dashes stripped.
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
