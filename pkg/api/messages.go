// Package api defines the Splitmate RPC surface: request and response
// messages, procedure names, and Connect handler and client constructors.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Friend struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Expense struct {
	ID               int64           `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	PayerID          int64           `json:"payer_id"`
	PayerName        string          `json:"payer_name,omitempty"`
	ParticipantIDs   []int64         `json:"participant_ids"`
	ParticipantNames []string        `json:"participant_names"`
	Timestamp        time.Time       `json:"timestamp"`
	Settled          bool            `json:"settled"`
}

type Settlement struct {
	ID        int64           `json:"id"`
	PayerID   int64           `json:"payer_id"`
	PayerName string          `json:"payer_name,omitempty"`
	PayeeID   int64           `json:"payee_id"`
	PayeeName string          `json:"payee_name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	ExpenseID *int64          `json:"expense_id,omitempty"`
}

// Debt is one directed pairwise balance: From owes To.
type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type PersonSummary struct {
	FriendID   int64           `json:"friend_id"`
	Name       string          `json:"name"`
	Paid       decimal.Decimal `json:"paid"`
	Owed       decimal.Decimal `json:"owed"`
	Received   decimal.Decimal `json:"received"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

type AddFriendRequest struct {
	Name string `json:"name"`
}

type AddFriendResponse struct {
	Friend Friend `json:"friend"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type DeleteFriendRequest struct {
	FriendID int64 `json:"friend_id"`
}

type DeleteFriendResponse struct{}

type AddExpenseRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        int64           `json:"payer_id"`
	ParticipantIDs []int64         `json:"participant_ids"`
	// Timestamp defaults to now.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type DeleteExpenseResponse struct {
	DeletedSettlements int `json:"deleted_settlements"`
}

type RecordSettlementRequest struct {
	PayerID   int64           `json:"payer_id"`
	PayeeID   int64           `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	ExpenseID *int64          `json:"expense_id,omitempty"`
	// Timestamp defaults to now.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	SettlementID int64 `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

// GetHistoryRequest lists everything when Year and Month are both zero.
type GetHistoryRequest struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

type GetHistoryResponse struct {
	Expenses    []Expense    `json:"expenses"`
	Settlements []Settlement `json:"settlements"`
}

// GetDashboardRequest caps the recent expense list at RecentLimit entries
// (default 10, negative for all).
type GetDashboardRequest struct {
	RecentLimit int `json:"recent_limit,omitempty"`
}

type GetDashboardResponse struct {
	Debts                 []Debt          `json:"debts"`
	YouOwe                decimal.Decimal `json:"you_owe"`
	YouAreOwed            decimal.Decimal `json:"you_are_owed"`
	TotalSpent            decimal.Decimal `json:"total_spent"`
	OutstandingCount      int             `json:"outstanding_count"`
	DistinguishedFriendID int64           `json:"distinguished_friend_id"`
	RecentExpenses        []Expense       `json:"recent_expenses"`
}

// GetMonthlySummaryRequest defaults Year and Month to the current month.
// AllTime disables the month restriction.
type GetMonthlySummaryRequest struct {
	Year    int  `json:"year,omitempty"`
	Month   int  `json:"month,omitempty"`
	AllTime bool `json:"all_time,omitempty"`
}

type GetMonthlySummaryResponse struct {
	Year      int             `json:"year,omitempty"`
	Month     int             `json:"month,omitempty"`
	AllTime   bool            `json:"all_time,omitempty"`
	Summaries []PersonSummary `json:"summaries"`
}
