package models

// Group represents a named set of members that owns expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// MemberIDs lists the users belonging to this group. The creator is
	// always a member.
	MemberIDs []string `json:"members"`

	// ExpenseIDs lists the expenses recorded against this group, in
	// creation order.
	ExpenseIDs []string `json:"expenses"`

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// GroupDetail is a group with member and expense references resolved.
type GroupDetail struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Members   []UserRef       `json:"members"`
	Expenses  []ExpenseDetail `json:"expenses"`
	CreatedBy string          `json:"createdBy"`
	CreatedAt int64           `json:"createdAt"`
}
