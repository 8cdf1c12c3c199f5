package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestCalculateTotalCost(t *testing.T) {
	tests := []struct {
		name string
		in   CostComponents
		want float64
	}{
		{"all nil yields zero", CostComponents{}, 0},
		{
			"purchase price only",
			CostComponents{PurchasePriceRmb: f(8200)},
			8200,
		},
		{
			"all components sum",
			CostComponents{
				ShippingCostRmb:  f(1200),
				CustomsFees:      f(350),
				ImportDuties:     f(450),
				PurchasePriceRmb: f(8200),
			},
			10200,
		},
		{
			"partial components",
			CostComponents{ShippingCostRmb: f(800), PurchasePriceRmb: f(5000)},
			5800,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalCost(tt.in))
		})
	}
}
