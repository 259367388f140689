package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/starkbrilliance/smartharvest/internal/constants"
)

// GenerateSessionToken generates an opaque random bearer token.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, constants.SessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
