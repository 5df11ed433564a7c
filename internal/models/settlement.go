package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a direct payment from one friend to another to clear debt.
type Settlement struct {
	ID int64

	// PayerID is the friend who paid (debtor settling up).
	PayerID int64

	// PayeeID is the friend who received the payment (creditor).
	PayeeID int64

	// Amount is the positive payment amount.
	Amount decimal.Decimal

	Timestamp time.Time

	// ExpenseID optionally links the settlement to the expense it pays off.
	// Informational only; deleting that expense deletes this settlement.
	ExpenseID *int64
}
