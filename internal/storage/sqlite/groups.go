package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"divvy/internal/models"
	"divvy/internal/storage"
)

// CreateGroup persists a new group and its initial member rows in a single
// transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, memberID := range group.MemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
			group.ID, memberID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including member and expense ID lists.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadGroupRefs(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroupsForUser retrieves every group the user belongs to.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = ?
		ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.loadGroupRefs(ctx, group); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// AddGroupMember appends a user to a group's member list. The user's own
// group list is derived from the same row, so a single insert updates both
// sides of the relationship.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		groupID, userID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// loadGroupRefs fills in the member and expense ID lists for a group.
func (s *SQLiteStore) loadGroupRefs(ctx context.Context, group *models.Group) error {
	memberRows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY joined_at",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var userID string
		if err := memberRows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := memberRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT id FROM expenses WHERE group_id = ? ORDER BY created_at, id",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var expenseID string
		if err := expenseRows.Scan(&expenseID); err != nil {
			return fmt.Errorf("failed to scan group expense: %w", err)
		}
		group.ExpenseIDs = append(group.ExpenseIDs, expenseID)
	}
	if err := expenseRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group expenses: %w", err)
	}

	return nil
}
