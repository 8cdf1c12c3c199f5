package items

// CostComponents groups the landed-cost inputs of an item. USD figures are
// informational; the total is computed over the local-currency fields only.
type CostComponents struct {
	ShippingCostRmb  *float64
	CustomsFees      *float64
	ImportDuties     *float64
	PurchasePriceRmb *float64
}

// CalculateTotalCost sums shipping, customs fees, import duties and purchase
// price; an absent field contributes zero. Inputs are taken as given.
func CalculateTotalCost(c CostComponents) float64 {
	return deref(c.ShippingCostRmb) + deref(c.CustomsFees) + deref(c.ImportDuties) + deref(c.PurchasePriceRmb)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
