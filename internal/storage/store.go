// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitmate/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness constraint.
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference is returned when a record points at a friend or
	// expense that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInUse is returned when deleting a record that others still reference.
	ErrInUse = errors.New("still referenced")
)

// Snapshot is a consistent point-in-time read of the ledger.
type Snapshot struct {
	Friends     []*models.Friend
	Expenses    []*models.Expense
	Settlements []*models.Settlement
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	// CreateFriend persists a new friend. friend.ID and friend.CreatedAt are populated.
	// Returns ErrConflict if the name is taken.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	// GetFriend retrieves a friend by ID.
	GetFriend(ctx context.Context, friendID int64) (*models.Friend, error)

	// ListFriends returns all friends in creation order.
	ListFriends(ctx context.Context) ([]*models.Friend, error)

	// DeleteFriend removes a friend and their expense memberships.
	// Returns ErrInUse if the friend paid an expense or is party to a settlement.
	DeleteFriend(ctx context.Context, friendID int64) error

	// CreateExpense persists a new expense with its participant set.
	// Returns ErrInvalidReference if the payer or a participant is unknown.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID int64) (*models.Expense, error)

	// ListExpenses returns expenses inside period, newest first.
	ListExpenses(ctx context.Context, period models.Period) ([]*models.Expense, error)

	// DeleteExpense removes an expense and every settlement linked to it.
	// It returns the number of settlements removed.
	DeleteExpense(ctx context.Context, expenseID int64) (int, error)

	// CreateSettlement persists a new settlement.
	// Returns ErrInvalidReference if a friend or the linked expense is unknown.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID int64) (*models.Settlement, error)

	// ListSettlements returns settlements inside period, newest first.
	ListSettlements(ctx context.Context, period models.Period) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID int64) error

	// Snapshot reads friends, expenses and settlements for period in one
	// read-only transaction. Friends are never filtered by period.
	Snapshot(ctx context.Context, period models.Period) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
