package models

import (
	"time"
)

// Contact submission statuses
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusResolved = "resolved"
)

type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}
