package server

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSeatID creates a unique seat or connection ID.
func GenerateSeatID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
