package domain

// CartLine is one distinct product in the cart with its quantity. The display
// fields are snapshotted from the product at add time, matching what the
// storefront persists under the "cart" key.
type CartLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPricePaise int64  `json:"price"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image"`
}

// Cart is an ordered sequence of lines, at most one per product. Insertion
// order is significant for display only.
type Cart []CartLine

// Total is the recomputed sum of unit price times quantity. It is never
// stored.
func (c Cart) Total() int64 {
	var total int64
	for _, line := range c {
		total += line.UnitPricePaise * int64(line.Quantity)
	}
	return total
}

// Count is the number of units across all lines, shown on the cart badge.
func (c Cart) Count() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// Find returns the line for productID, or false when the cart has none.
func (c Cart) Find(productID string) (CartLine, bool) {
	for _, line := range c {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}
