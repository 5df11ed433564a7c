package models

import "time"

// Friend is a participant in the shared-expense group.
type Friend struct {
	// ID is the surrogate key assigned by the store.
	ID int64

	// Name is the display name. Unique across the ledger.
	Name string

	// CreatedAt is when the friend was added.
	CreatedAt time.Time
}
