// Package signature checks webhook bodies against the tracker's HMAC-SHA256
// signature header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	// ErrLengthMismatch is a hard rejection: the decoded signature is not a
	// SHA-256 digest, so a constant-time comparison cannot be performed.
	ErrLengthMismatch = errors.New("signature length does not match digest length")
	ErrNotHex         = errors.New("signature is not hex encoded")
)

// Verify reports whether provided is the hex HMAC-SHA256 of body under
// secret. A well-formed but wrong signature returns (false, nil).
func Verify(body []byte, provided, secret string) (bool, error) {
	decoded, err := hex.DecodeString(strings.TrimSpace(provided))
	if err != nil {
		return false, ErrNotHex
	}

	expected := digest(body, secret)
	if len(decoded) != len(expected) {
		return false, ErrLengthMismatch
	}

	return hmac.Equal(decoded, expected), nil
}

// Sign returns the hex signature the tracker would send for body.
func Sign(body []byte, secret string) string {
	return hex.EncodeToString(digest(body, secret))
}

func digest(body []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}
