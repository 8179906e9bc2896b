package models

import (
	"time"
)

// Donation payment providers
const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

// MaxDonationCents caps a single donation at $1,000,000.
const MaxDonationCents = 100_000_000

type Donation struct {
	ID          string
	UserID      *string // nil for anonymous donations
	AmountCents int64   // positive count of minor currency units
	Currency    string  // ISO 4217, 3 characters
	Provider    string
	ProviderID  string // provider's payment reference; unique per provider
	Recurring   bool
	CreatedAt   time.Time

	// Populated on reads that join the donor, never stored.
	DonorName string
}
