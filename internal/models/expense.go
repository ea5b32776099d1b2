package models

// Expense represents an amount paid by one member on behalf of a set of
// beneficiaries. Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"groupId"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the full expense amount. Never negative.
	Amount float64 `json:"amount"`

	// PaidBy is the user ID of the member who paid.
	PaidBy string `json:"paidBy"`

	// Splits assigns each beneficiary their share of the amount. Every
	// share equals Amount / len(Splits): shares are computed once at
	// creation, not by a hook on every write.
	Splits []Split `json:"splitBetween"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// Split is one beneficiary's share of an expense.
type Split struct {
	UserID string  `json:"user"`
	Share  float64 `json:"share"`
}

// ExpenseDetail is an expense with payer and split users resolved.
type ExpenseDetail struct {
	ID          string        `json:"id"`
	GroupID     string        `json:"groupId"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	PaidBy      UserRef       `json:"paidBy"`
	Splits      []SplitDetail `json:"splitBetween"`
	CreatedAt   int64         `json:"createdAt"`
}

// SplitDetail is one resolved beneficiary's share of an expense.
type SplitDetail struct {
	User  UserRef `json:"user"`
	Share float64 `json:"share"`
}
