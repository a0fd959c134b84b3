package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PaymentService/pkg/money"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{name: "already cents", amount: 12.34, want: 12.34},
		{name: "half rounds to even down", amount: 0.125, want: 0.12},
		{name: "half rounds to even up", amount: 0.135, want: 0.14},
		{name: "third of hundred", amount: 100.0 / 3, want: 33.33},
		{name: "zero", amount: 0, want: 0},
		{name: "negative", amount: -1.005, want: -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, money.Round(tt.amount), 1e-9)
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		percentage float64
		want       float64
	}{
		{name: "half of hundred", amount: 100, percentage: 50, want: 50},
		{name: "quarter of hundred", amount: 100, percentage: 25, want: 25},
		{name: "rounds to cents", amount: 99.99, percentage: 33, want: 33.0},
		{name: "zero percent", amount: 100, percentage: 0, want: 0},
		{name: "full amount", amount: 81.5, percentage: 100, want: 81.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, money.Percentage(tt.amount, tt.percentage), 1e-9)
		})
	}
}

func TestCentsConversion(t *testing.T) {
	assert.Equal(t, int64(1234), money.ToCents(12.34))
	assert.Equal(t, int64(0), money.ToCents(0))
	assert.InDelta(t, 12.34, money.FromCents(1234), 1e-9)

	// Типичная двоичная погрешность float64 не сдвигает сумму на цент
	assert.Equal(t, int64(2910), money.ToCents(29.1))
}
