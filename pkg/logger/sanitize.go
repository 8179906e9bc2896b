package logger

import (
	"strings"
)

// MaskEmail masks an email address for logging (e.g., "u***@e***.org").
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "[invalid-email]"
	}

	local := parts[0]
	domain := parts[1]

	if len(local) > 1 {
		local = string(local[0]) + strings.Repeat("*", len(local)-1)
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) > 1 {
		for i := 0; i < len(domainParts)-1; i++ {
			domainParts[i] = strings.Repeat("*", len(domainParts[i]))
		}
		domain = strings.Join(domainParts, ".")
	}

	return local + "@" + domain
}

var sensitiveParams = []string{
	"password", "token", "secret", "api_key", "apikey", "email", "auth", "csrf",
}

// SensitiveQuery reports whether a raw query string names any sensitive
// parameter and should be redacted wholesale from request logs.
func SensitiveQuery(rawQuery string) bool {
	query := strings.ToLower(rawQuery)
	for _, param := range sensitiveParams {
		if strings.Contains(query, param) {
			return true
		}
	}
	return false
}
