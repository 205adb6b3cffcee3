package utils

import (
	"net"
	"strings"

	"github.com/google/uuid"
)

// GenerateClientID creates a short, human-readable id for a connected peer.
// Format: {kind}-{host}-{8charHexUUID}
//
// Example:
//   - Input: kind="ws", remoteAddr="127.0.0.1:53122"
//   - Output: "ws-127.0.0.1-a3f8e2b1"
//
// The port is dropped because it changes on every reconnect; the UUID suffix
// keeps two tabs from the same host apart.
func GenerateClientID(kind, remoteAddr string) string {
	return kind + "-" + hostOf(remoteAddr) + "-" + generateShortUUID()
}

// hostOf strips the port from an address:
//   - "127.0.0.1:53122" -> "127.0.0.1"
//   - "[::1]:53122" -> "::1"
//   - "" -> "unknown"
func hostOf(remoteAddr string) string {
	if remoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	// Remove hyphens and take first 8 characters
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
