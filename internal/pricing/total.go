package pricing

// ComputeTotal sums the price of every selected key. Keys that do not
// resolve to a table entry add nothing; a stale or malformed key must
// never fail the whole registration.
func ComputeTotal(t *PriceTable, selected []string) int {
	total := 0
	for _, s := range selected {
		if p, ok := t.Price(ParseKey(s)); ok {
			total += p
		}
	}
	return total
}
