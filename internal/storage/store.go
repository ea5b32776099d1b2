// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"divvy/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations for users, groups, and expenses.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Returns an error if the email is
	// already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address, including their
	// group memberships. Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, including their group
	// memberships. Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Users that don't
	// exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group together with its initial member
	// rows.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID with member and expense ID lists.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsForUser retrieves every group the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMember appends a user to a group's member list.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// CreateExpense persists a new expense and its split rows, appending
	// the expense to its group's expense list.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves all expenses recorded against a group,
	// splits included, in creation order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
