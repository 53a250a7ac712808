// Package auth builds go-git transport.AuthMethod values from local SSH keys.
package auth

import "strings"

// matchesPattern checks if a host matches a pattern with one "*" wildcard
// at the start ("*.github.com") or the end ("gitlab.*").
func matchesPattern(host, pattern string) bool {
	if host == pattern {
		return true
	}

	if suffix, ok := strings.CutPrefix(pattern, "*."); ok && suffix != "" {
		return host == suffix || strings.HasSuffix(host, "."+suffix)
	}

	if prefix, ok := strings.CutSuffix(pattern, ".*"); ok && prefix != "" {
		return strings.HasPrefix(host, prefix+".") && len(host) > len(prefix)+1
	}

	return false
}
