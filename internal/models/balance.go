package models

// Balance is one user's aggregate position across a group's expenses.
// Positive NetBalance means the group owes the user money; negative means
// the user owes the group.
type Balance struct {
	User       UserRef `json:"user"`
	Paid       float64 `json:"paid"`
	Owes       float64 `json:"owes"`
	NetBalance float64 `json:"netBalance"`
}
