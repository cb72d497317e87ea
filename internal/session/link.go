package session

import "github.com/lithammer/shortuuid/v4"

// NewLink returns an unguessable access token. shortuuid encodes a random
// (v4) UUID, so the link carries 122 bits from crypto/rand.
func NewLink() string {
	return shortuuid.New()
}
