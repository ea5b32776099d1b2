package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"divvy/internal/models"
)

// CreateExpense persists an expense and its split rows in a single
// transaction. The group's expense list is derived from the expense's
// group_id, so committing the expense also appends it to the group.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, description, amount, paid_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Description, expense.Amount, expense.PaidBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, share) VALUES (?, ?, ?)",
			expense.ID, split.UserID, split.Share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses for a group in creation order,
// splits included.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, description, amount, paid_by, created_at FROM expenses WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.Description,
			&expense.Amount,
			&expense.PaidBy,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splitRows, err := s.db.QueryContext(ctx,
			"SELECT user_id, share FROM expense_splits WHERE expense_id = ? ORDER BY rowid",
			expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense splits: %w", err)
		}

		for splitRows.Next() {
			var split models.Split
			if err := splitRows.Scan(&split.UserID, &split.Share); err != nil {
				splitRows.Close()
				return nil, fmt.Errorf("failed to scan expense split: %w", err)
			}
			expense.Splits = append(expense.Splits, split)
		}
		if err := splitRows.Err(); err != nil {
			splitRows.Close()
			return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
		}
		splitRows.Close()
	}

	return expenses, nil
}
