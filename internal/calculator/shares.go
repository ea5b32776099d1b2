// Package calculator implements the pure computations behind expense
// splitting: equal-share assignment and per-user balance aggregation.
package calculator

import "fmt"

// EqualShares divides amount evenly across count beneficiaries.
// An empty beneficiary set is rejected rather than producing a division by
// zero.
func EqualShares(amount float64, count int) (float64, error) {
	if count <= 0 {
		return 0, fmt.Errorf("must have at least one beneficiary")
	}
	if amount < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return amount / float64(count), nil
}
