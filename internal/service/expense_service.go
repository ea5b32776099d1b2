package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"divvy/internal/calculator"
	"divvy/internal/models"
	"divvy/internal/storage"
)

// ExpenseService implements expense creation and balance queries.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the fields of an expense-creation request.
// PaidBy is optional and defaults to the caller.
type CreateExpenseInput struct {
	Description  string
	Amount       float64
	PaidBy       string
	SplitBetween []string
}

// CreateExpense records an expense against a group, splitting the amount
// evenly across the beneficiaries. Every beneficiary, and the payer, must be
// a member of the group; a violation is treated as an authorization failure,
// matching the membership policy of the rest of the API.
func (s *ExpenseService) CreateExpense(ctx context.Context, callerID, groupID string, in CreateExpenseInput) (*models.ExpenseDetail, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, validation("Please add a description")
	}
	if in.Amount < 0 {
		return nil, validation("Amount cannot be negative")
	}
	if len(in.SplitBetween) == 0 {
		return nil, validation("Please add at least one beneficiary")
	}
	seen := make(map[string]struct{}, len(in.SplitBetween))
	for _, userID := range in.SplitBetween {
		if _, dup := seen[userID]; dup {
			return nil, validation("Beneficiaries must be unique")
		}
		seen[userID] = struct{}{}
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Group not found")
		}
		return nil, internal("Server error", err)
	}

	paidBy := in.PaidBy
	if paidBy == "" {
		paidBy = callerID
	}
	if !group.HasMember(paidBy) {
		return nil, unauthorized("Not authorized")
	}
	for _, userID := range in.SplitBetween {
		if !group.HasMember(userID) {
			return nil, unauthorized("Not authorized")
		}
	}

	share, err := calculator.EqualShares(in.Amount, len(in.SplitBetween))
	if err != nil {
		return nil, validation(err.Error())
	}

	splits := make([]models.Split, len(in.SplitBetween))
	for i, userID := range in.SplitBetween {
		splits[i] = models.Split{UserID: userID, Share: share}
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: description,
		Amount:      in.Amount,
		PaidBy:      paidBy,
		Splits:      splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, internal("Server error", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"amount", expense.Amount,
		"beneficiaries", len(splits),
	)

	details, err := resolveExpenses(ctx, s.store, []*models.Expense{expense})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListExpenses returns all expenses recorded against a group, payer and
// split users resolved.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]models.ExpenseDetail, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, internal("Server error", err)
	}
	return resolveExpenses(ctx, s.store, expenses)
}

// BalanceSheet computes each member's paid/owes/net position across the
// group's expenses.
func (s *ExpenseService) BalanceSheet(ctx context.Context, groupID string) ([]models.Balance, error) {
	details, err := s.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.Balances(details)
	if err != nil {
		return nil, internal("Server error", err)
	}
	if balances == nil {
		balances = []models.Balance{}
	}
	return balances, nil
}

// resolveExpenses expands payer and split user IDs into {id, name, email}
// references with one batched store lookup. A reference that cannot be
// resolved aborts the whole call.
func resolveExpenses(ctx context.Context, store storage.Store, expenses []*models.Expense) ([]models.ExpenseDetail, error) {
	idSet := make(map[string]struct{})
	for _, expense := range expenses {
		idSet[expense.PaidBy] = struct{}{}
		for _, split := range expense.Splits {
			idSet[split.UserID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, internal("Server error", err)
	}

	ref := func(id string) (models.UserRef, error) {
		user, ok := users[id]
		if !ok {
			return models.UserRef{}, internal("Server error", errors.New("user "+id+" not found"))
		}
		return user.Ref(), nil
	}

	details := make([]models.ExpenseDetail, 0, len(expenses))
	for _, expense := range expenses {
		payer, err := ref(expense.PaidBy)
		if err != nil {
			return nil, err
		}

		splits := make([]models.SplitDetail, len(expense.Splits))
		for i, split := range expense.Splits {
			user, err := ref(split.UserID)
			if err != nil {
				return nil, err
			}
			splits[i] = models.SplitDetail{User: user, Share: split.Share}
		}

		details = append(details, models.ExpenseDetail{
			ID:          expense.ID,
			GroupID:     expense.GroupID,
			Description: expense.Description,
			Amount:      expense.Amount,
			PaidBy:      payer,
			Splits:      splits,
			CreatedAt:   expense.CreatedAt,
		})
	}

	return details, nil
}
