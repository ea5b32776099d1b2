package calculator

import (
	"math"
	"testing"
)

func TestEqualShares(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		count   int
		want    float64
		wantErr bool
	}{
		{name: "three-way split", amount: 90, count: 3, want: 30},
		{name: "uneven division", amount: 100, count: 3, want: 100.0 / 3.0},
		{name: "single beneficiary", amount: 42.5, count: 1, want: 42.5},
		{name: "zero amount", amount: 0, count: 4, want: 0},
		{name: "empty beneficiary set", amount: 50, count: 0, wantErr: true},
		{name: "negative amount", amount: -10, count: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EqualShares(tt.amount, tt.count)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualShares failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("share = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualSharesSumToAmount(t *testing.T) {
	amounts := []float64{90, 100, 0.01, 33.33, 7}
	counts := []int{1, 2, 3, 7}

	for _, amount := range amounts {
		for _, count := range counts {
			share, err := EqualShares(amount, count)
			if err != nil {
				t.Fatalf("EqualShares(%v, %d) failed: %v", amount, count, err)
			}
			sum := share * float64(count)
			if math.Abs(sum-amount) > 1e-9 {
				t.Errorf("shares for amount=%v count=%d sum to %v", amount, count, sum)
			}
		}
	}
}
