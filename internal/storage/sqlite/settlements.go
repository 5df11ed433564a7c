package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
)

const settlementColumns = "id, payer_id, payee_id, amount, timestamp, expense_id"

// CreateSettlement persists a new settlement to the database.
// Payer and payee equality is the caller's concern.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	settlement.Timestamp = s.timestamp(settlement.Timestamp)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	missing, err := missingFriends(ctx, tx, settlement.PayerID, settlement.PayeeID)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown friends %v: %w", missing, storage.ErrInvalidReference)
	}

	var expenseID any
	if settlement.ExpenseID != nil {
		found, err := exists(ctx, tx, "SELECT 1 FROM expenses WHERE id = ?", *settlement.ExpenseID)
		if err != nil {
			return fmt.Errorf("failed to check expense existence: %w", err)
		}
		if !found {
			return fmt.Errorf("unknown expense %d: %w", *settlement.ExpenseID, storage.ErrInvalidReference)
		}
		expenseID = *settlement.ExpenseID
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (payer_id, payee_id, amount, timestamp, expense_id)
		 VALUES (?, ?, ?, ?, ?)`,
		settlement.PayerID, settlement.PayeeID, settlement.Amount, settlement.Timestamp.Unix(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read settlement id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	settlement.ID = id

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID int64) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?",
		settlementID,
	)
	settlement, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %d: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return settlement, nil
}

// ListSettlements retrieves settlements inside period, newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, period models.Period) ([]*models.Settlement, error) {
	return listSettlements(ctx, s.db, period)
}

func listSettlements(ctx context.Context, q querier, period models.Period) ([]*models.Settlement, error) {
	where, args := periodClause("timestamp", period)
	rows, err := q.QueryContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements"+where+" ORDER BY timestamp DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted settlements: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("settlement %d: %w", settlementID, storage.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var ts int64
	var expenseID sql.NullInt64
	if err := row.Scan(&settlement.ID, &settlement.PayerID, &settlement.PayeeID,
		&settlement.Amount, &ts, &expenseID); err != nil {
		return nil, err
	}
	settlement.Timestamp = fromUnix(ts)
	if expenseID.Valid {
		id := expenseID.Int64
		settlement.ExpenseID = &id
	}
	return settlement, nil
}
