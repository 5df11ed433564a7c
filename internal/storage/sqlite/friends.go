package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
)

// CreateFriend inserts a new friend into the database.
func (s *SQLiteStore) CreateFriend(ctx context.Context, friend *models.Friend) error {
	friend.CreatedAt = s.timestamp(friend.CreatedAt)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO friends (name, created_at) VALUES (?, ?)",
		friend.Name, friend.CreatedAt.Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("friend %q already exists: %w", friend.Name, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert friend: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read friend id: %w", err)
	}
	friend.ID = id

	return nil
}

// GetFriend retrieves a friend by ID.
func (s *SQLiteStore) GetFriend(ctx context.Context, friendID int64) (*models.Friend, error) {
	friend := &models.Friend{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM friends WHERE id = ?",
		friendID,
	).Scan(&friend.ID, &friend.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("friend %d: %w", friendID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	friend.CreatedAt = fromUnix(createdAt)

	return friend, nil
}

// ListFriends retrieves all friends ordered by ID.
func (s *SQLiteStore) ListFriends(ctx context.Context) ([]*models.Friend, error) {
	return listFriends(ctx, s.db)
}

func listFriends(ctx context.Context, q querier) ([]*models.Friend, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, created_at FROM friends ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		friend := &models.Friend{}
		var createdAt int64
		if err := rows.Scan(&friend.ID, &friend.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friend.CreatedAt = fromUnix(createdAt)
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}

// DeleteFriend removes a friend who is not a payer or settlement party.
// Their participation in other friends' expenses is removed with them.
func (s *SQLiteStore) DeleteFriend(ctx context.Context, friendID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	found, err := exists(ctx, tx, "SELECT 1 FROM friends WHERE id = ?", friendID)
	if err != nil {
		return fmt.Errorf("failed to check friend existence: %w", err)
	}
	if !found {
		return fmt.Errorf("friend %d: %w", friendID, storage.ErrNotFound)
	}

	referenced, err := exists(ctx, tx,
		`SELECT 1 FROM expenses WHERE paid_by_id = ?
		 UNION ALL
		 SELECT 1 FROM settlements WHERE payer_id = ? OR payee_id = ?
		 LIMIT 1`,
		friendID, friendID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to check friend references: %w", err)
	}
	if referenced {
		return fmt.Errorf("friend %d has expenses or settlements: %w", friendID, storage.ErrInUse)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE id = ?", friendID); err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// missingFriends returns the IDs in ids that do not name a friend.
func missingFriends(ctx context.Context, q querier, ids ...int64) ([]int64, error) {
	var missing []int64
	for _, id := range ids {
		found, err := exists(ctx, q, "SELECT 1 FROM friends WHERE id = ?", id)
		if err != nil {
			return nil, fmt.Errorf("failed to check friend %d: %w", id, err)
		}
		if !found {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
