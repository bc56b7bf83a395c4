package services

// ComputeTotals sums net, tax and gross amounts over the draft's resolved
// line items. Items awaiting manual product selection have no price yet and
// are excluded; totals are plain arithmetic, never a pricing decision.
func ComputeTotals(items []DraftLineItem) (net, tax, gross float64) {
	for _, it := range items {
		if it.ResolvedProductID == nil {
			continue
		}
		line := it.Quantity * it.UnitPrice
		net += line
		rate := it.VATRate
		if rate < 0 {
			rate = 0
		}
		tax += line * rate
	}
	gross = net + tax
	return net, tax, gross
}
