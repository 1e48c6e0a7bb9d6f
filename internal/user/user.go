// Package user identifies the operating system account running salesboard
package user

import (
	"os"
	"os/user"
	"strings"
)

// Fallback is the identity used when the account cannot be determined
const Fallback = "local"

// Username returns the login name of the current account.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. Fallback - final fallback to ensure a non-empty value
func Username() string {
	if current, err := user.Current(); err == nil && current.Username != "" {
		return strings.ToLower(current.Username)
	}
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return strings.ToLower(name)
	}
	return Fallback
}

// DisplayName returns a human name for id. The account's full name is used
// when id is the current account and the OS knows it; otherwise id itself.
func DisplayName(id string) string {
	current, err := user.Current()
	if err != nil || !strings.EqualFold(current.Username, id) {
		return id
	}
	// GECOS may carry extra comma separated fields after the name
	name, _, _ := strings.Cut(current.Name, ",")
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return id
}
