package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
)

// CreateExpense persists a new expense and its participant set.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	expense.Timestamp = s.timestamp(expense.Timestamp)
	expense.ParticipantIDs = uniqueIDs(expense.ParticipantIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	missing, err := missingFriends(ctx, tx, append([]int64{expense.PayerID}, expense.ParticipantIDs...)...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown friends %v: %w", missing, storage.ErrInvalidReference)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (description, amount, paid_by_id, timestamp, is_settled)
		 VALUES (?, ?, ?, ?, ?)`,
		expense.Description, expense.Amount, expense.PayerID, expense.Timestamp.Unix(), expense.Settled,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	if err := insertParticipants(ctx, tx, id, expense.ParticipantIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	expense.ID = id

	return nil
}

func insertParticipants(ctx context.Context, q querier, expenseID int64, participantIDs []int64) error {
	for i, friendID := range participantIDs {
		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, friend_id, position) VALUES (?, ?, ?)",
			expenseID, friendID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expense := &models.Expense{}
	var ts int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, paid_by_id, timestamp, is_settled FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PayerID, &ts, &expense.Settled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Timestamp = fromUnix(ts)

	rows, err := s.db.QueryContext(ctx,
		"SELECT friend_id FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var friendID int64
		if err := rows.Scan(&friendID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.ParticipantIDs = append(expense.ParticipantIDs, friendID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves expenses inside period, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, period models.Period) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, period)
}

func listExpenses(ctx context.Context, q querier, period models.Period) ([]*models.Expense, error) {
	where, args := periodClause("timestamp", period)
	rows, err := q.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_id, timestamp, is_settled FROM expenses"+where+
			" ORDER BY timestamp DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[int64]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var ts int64
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PayerID, &ts, &expense.Settled); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Timestamp = fromUnix(ts)
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	// Load all participant rows for the same period in one pass.
	where, args = periodClause("e.timestamp", period)
	partRows, err := q.QueryContext(ctx,
		`SELECT ep.expense_id, ep.friend_id FROM expense_participants ep
		 JOIN expenses e ON e.id = ep.expense_id`+where+
			" ORDER BY ep.expense_id, ep.position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, friendID int64
		if err := partRows.Scan(&expenseID, &friendID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if expense, ok := byID[expenseID]; ok {
			expense.ParticipantIDs = append(expense.ParticipantIDs, friendID)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense, its participant rows and linked settlements.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID int64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	found, err := exists(ctx, tx, "SELECT 1 FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return 0, fmt.Errorf("failed to check expense existence: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
	}

	// Linked settlements go first; the foreign key cascade is only a backstop.
	res, err := tx.ExecContext(ctx, "DELETE FROM settlements WHERE expense_id = ?", expenseID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete linked settlements: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count linked settlements: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expenseID); err != nil {
		return 0, fmt.Errorf("failed to delete participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return 0, fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(removed), nil
}

// uniqueIDs drops repeated IDs, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
