package integration

import (
	"fmt"
	"time"
)

// TestUser generates unique test user credentials using timestamp
func TestUser(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123!"
	return
}

// TestProviderID generates a unique payment provider reference
func TestProviderID(suffix string) string {
	return fmt.Sprintf("pi_test_%d_%s", time.Now().UnixNano(), suffix)
}
