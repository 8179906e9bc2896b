package models

import (
	"time"
)

// AuditAction is the closed vocabulary of security-relevant actions.
type AuditAction string

const (
	AuditUserCreated     AuditAction = "USER_CREATED"
	AuditUserUpdated     AuditAction = "USER_UPDATED"
	AuditUserDeleted     AuditAction = "USER_DELETED"
	AuditUserRestored    AuditAction = "USER_RESTORED"
	AuditUserLogin       AuditAction = "USER_LOGIN"
	AuditUserLogout      AuditAction = "USER_LOGOUT"
	AuditUserLoginFailed AuditAction = "USER_LOGIN_FAILED"

	AuditAdminLogin       AuditAction = "ADMIN_LOGIN"
	AuditAdminLoginFailed AuditAction = "ADMIN_LOGIN_FAILED"
	AuditAdminAccess      AuditAction = "ADMIN_ACCESS"

	AuditDonationCreated  AuditAction = "DONATION_CREATED"
	AuditDonationUpdated  AuditAction = "DONATION_UPDATED"
	AuditDonationRefunded AuditAction = "DONATION_REFUNDED"
	AuditPaymentProcessed AuditAction = "PAYMENT_PROCESSED"
	AuditPaymentFailed    AuditAction = "PAYMENT_FAILED"

	AuditPasswordChanged   AuditAction = "PASSWORD_CHANGED"
	AuditFailedAuthAttempt AuditAction = "FAILED_AUTH_ATTEMPT"
)

// AuditLog is an immutable append-only record of a security-relevant
// action. Never updated or deleted once written.
type AuditLog struct {
	ID        string
	Action    AuditAction
	ActorID   *string // nil when the action has no known actor
	CreatedAt time.Time

	// Populated on reads that join the actor, never stored.
	ActorName  string
	ActorEmail string
}
