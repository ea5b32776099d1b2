package calculator

import (
	"fmt"

	"divvy/internal/models"
)

// Balances computes each user's position across a group's expenses.
//
// Algorithm:
//   - For each expense: the payer's Paid grows by the full amount, and every
//     split participant's Owes grows by amount / len(splits). A payer who is
//     also a beneficiary accumulates both.
//   - After all expenses: NetBalance = Paid - Owes.
//
// The result preserves first-appearance order: the payer of an expense is
// recorded before its participants, and expenses are processed in the order
// given.
func Balances(expenses []models.ExpenseDetail) ([]models.Balance, error) {
	index := make(map[string]int)
	var balances []models.Balance

	entry := func(user models.UserRef) *models.Balance {
		if i, ok := index[user.ID]; ok {
			return &balances[i]
		}
		index[user.ID] = len(balances)
		balances = append(balances, models.Balance{User: user})
		return &balances[len(balances)-1]
	}

	for _, expense := range expenses {
		if len(expense.Splits) == 0 {
			return nil, fmt.Errorf("expense %s has no beneficiaries", expense.ID)
		}
		perPerson := expense.Amount / float64(len(expense.Splits))

		entry(expense.PaidBy).Paid += expense.Amount

		for _, split := range expense.Splits {
			entry(split.User).Owes += perPerson
		}
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].Paid - balances[i].Owes
	}

	return balances, nil
}
