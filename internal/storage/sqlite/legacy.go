package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
)

// ImportStats reports what ImportLegacy copied and what it had to drop.
type ImportStats struct {
	Friends             int
	Expenses            int
	Settlements         int
	SkippedExpenses     int // payer no longer exists
	SkippedSettlements  int // payer or payee no longer exists
	DroppedParticipants int // unparseable or unknown ids in split_between
}

// legacyTimeLayouts are the DateTime encodings SQLAlchemy writes to SQLite.
var legacyTimeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ImportLegacy copies friends, expenses and settlements from a database written
// by the original web application, preserving IDs so friend 1 stays the
// distinguished friend. The comma-delimited split_between column is parsed with
// models.ParseParticipantIDs; ids that do not name an imported friend are dropped.
// The target ledger must be empty.
func (s *SQLiteStore) ImportLegacy(ctx context.Context, legacyPath string) (*ImportStats, error) {
	legacy, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", legacyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}
	defer legacy.Close()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nonEmpty, err := exists(ctx, tx, "SELECT 1 FROM friends LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("failed to check target ledger: %w", err)
	}
	if nonEmpty {
		return nil, fmt.Errorf("target ledger already has friends: %w", storage.ErrConflict)
	}

	stats := &ImportStats{}

	friendIDs, err := s.importLegacyFriends(ctx, legacy, tx, stats)
	if err != nil {
		return nil, err
	}
	expenseIDs, err := s.importLegacyExpenses(ctx, legacy, tx, friendIDs, stats)
	if err != nil {
		return nil, err
	}
	if err := s.importLegacySettlements(ctx, legacy, tx, friendIDs, expenseIDs, stats); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stats, nil
}

func (s *SQLiteStore) importLegacyFriends(ctx context.Context, legacy *sql.DB, tx *sql.Tx, stats *ImportStats) (map[int64]bool, error) {
	rows, err := legacy.QueryContext(ctx, "SELECT id, name, created_at FROM friends ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy friends: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		var name string
		var createdAt any
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan legacy friend: %w", err)
		}
		created := s.timestamp(parseLegacyTime(createdAt))
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO friends (id, name, created_at) VALUES (?, ?, ?)",
			id, name, created.Unix(),
		); err != nil {
			return nil, fmt.Errorf("failed to insert friend %d: %w", id, err)
		}
		ids[id] = true
		stats.Friends++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate legacy friends: %w", err)
	}

	return ids, nil
}

func (s *SQLiteStore) importLegacyExpenses(ctx context.Context, legacy *sql.DB, tx *sql.Tx, friendIDs map[int64]bool, stats *ImportStats) (map[int64]bool, error) {
	rows, err := legacy.QueryContext(ctx,
		"SELECT id, description, amount, paid_by_id, split_between, timestamp, is_settled FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy expenses: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var (
			id, payerID  int64
			description  string
			amount       float64
			splitBetween sql.NullString
			ts           any
			settled      sql.NullBool
		)
		if err := rows.Scan(&id, &description, &amount, &payerID, &splitBetween, &ts, &settled); err != nil {
			return nil, fmt.Errorf("failed to scan legacy expense: %w", err)
		}
		if !friendIDs[payerID] {
			slog.Warn("Skipping legacy expense with unknown payer", "expense_id", id, "payer_id", payerID)
			stats.SkippedExpenses++
			continue
		}

		parsed, malformed := models.SplitParticipantIDs(splitBetween.String)
		stats.DroppedParticipants += malformed
		participants := make([]int64, 0, len(parsed))
		for _, fid := range parsed {
			if !friendIDs[fid] {
				stats.DroppedParticipants++
				continue
			}
			participants = append(participants, fid)
		}

		timestamp := s.timestamp(parseLegacyTime(ts))
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, description, amount, paid_by_id, timestamp, is_settled)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, description, decimal.NewFromFloat(amount), payerID, timestamp.Unix(), settled.Bool,
		); err != nil {
			return nil, fmt.Errorf("failed to insert expense %d: %w", id, err)
		}
		if err := insertParticipants(ctx, tx, id, participants); err != nil {
			return nil, err
		}
		ids[id] = true
		stats.Expenses++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate legacy expenses: %w", err)
	}

	return ids, nil
}

func (s *SQLiteStore) importLegacySettlements(ctx context.Context, legacy *sql.DB, tx *sql.Tx, friendIDs, expenseIDs map[int64]bool, stats *ImportStats) error {
	rows, err := legacy.QueryContext(ctx,
		"SELECT id, payer_id, payee_id, amount, timestamp, expense_id FROM settlements ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to read legacy settlements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, payerID, payeeID int64
			amount               float64
			ts                   any
			expenseID            sql.NullInt64
		)
		if err := rows.Scan(&id, &payerID, &payeeID, &amount, &ts, &expenseID); err != nil {
			return fmt.Errorf("failed to scan legacy settlement: %w", err)
		}
		if !friendIDs[payerID] || !friendIDs[payeeID] {
			slog.Warn("Skipping legacy settlement with unknown friend",
				"settlement_id", id, "payer_id", payerID, "payee_id", payeeID)
			stats.SkippedSettlements++
			continue
		}

		var link any
		if expenseID.Valid && expenseIDs[expenseID.Int64] {
			link = expenseID.Int64
		}

		timestamp := s.timestamp(parseLegacyTime(ts))
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (id, payer_id, payee_id, amount, timestamp, expense_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, payerID, payeeID, decimal.NewFromFloat(amount), timestamp.Unix(), link,
		); err != nil {
			return fmt.Errorf("failed to insert settlement %d: %w", id, err)
		}
		stats.Settlements++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate legacy settlements: %w", err)
	}

	return nil
}

// parseLegacyTime accepts the driver's time.Time for DATETIME columns as well as
// raw text. It returns the zero time when the value is missing or unparseable;
// the store clock then stands in for it.
func parseLegacyTime(v any) time.Time {
	var text string
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return time.Time{}
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			return t
		}
	}
	return time.Time{}
}
