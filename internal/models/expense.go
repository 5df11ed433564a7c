package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single payment event split evenly among its participants.
type Expense struct {
	ID          int64
	Description string

	// Amount is the positive total paid by PayerID.
	Amount decimal.Decimal

	// PayerID references the Friend who paid.
	PayerID int64

	// ParticipantIDs is the set of friends sharing the cost.
	// It may be empty, and may or may not include the payer.
	ParticipantIDs []int64

	Timestamp time.Time

	// Settled is carried for compatibility with imported data.
	// No balance computation reads it.
	Settled bool
}
