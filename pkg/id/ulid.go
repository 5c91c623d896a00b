package id

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GetULID generates a lexicographically sortable unique id,
// used for request ids in access logs.
func GetULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	ms := ulid.Timestamp(time.Now())
	v, err := ulid.New(ms, entropy)
	if err != nil {
		return ""
	}
	return v.String()
}
