package domain

// Customization is the (size, flavor, message) triple distinguishing
// otherwise-identical cart lines for the same product. It is a value type:
// two customizations are equal iff all fields are equal.
type Customization struct {
	Size    string `json:"size"`
	Flavor  string `json:"flavor"`
	Message string `json:"message"`
}

// CartLine is one entry in the cart, identified by (ProductID, Customization).
// UnitPriceCents is a snapshot of the product's base price at add time; later
// catalog price changes do not affect existing lines.
type CartLine struct {
	ProductID      string        `json:"product_id"`
	Name           string        `json:"name"`
	UnitPriceCents int64         `json:"unit_price_cents"`
	Quantity       int           `json:"quantity"`
	Customization  Customization `json:"customization"`
}

// Cart holds the consolidated lines of one session.
// Line order is insertion order and is preserved across mutations.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

// Add merges quantity into an existing line with the same
// (productID, customization) or appends a new line.
func (c *Cart) Add(productID, name string, unitPriceCents int64, quantity int, custom Customization) {
	if quantity < 1 {
		quantity = 1
	}

	if i := c.find(productID, custom); i >= 0 {
		c.Lines[i].Quantity += quantity
		return
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:      productID,
		Name:           name,
		UnitPriceCents: unitPriceCents,
		Quantity:       quantity,
		Customization:  custom,
	})
}

// Remove deletes the line matching (productID, customization).
// Removing an absent line is a no-op.
func (c *Cart) Remove(productID string, custom Customization) {
	if i := c.find(productID, custom); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// SetQuantity sets the quantity of the matching line.
// A quantity below 1 removes the line. Absent lines are left untouched.
func (c *Cart) SetQuantity(productID string, custom Customization, quantity int) {
	i := c.find(productID, custom)
	if i < 0 {
		return
	}

	if quantity < 1 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return
	}

	c.Lines[i].Quantity = quantity
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// TotalCents returns the sum of unit price times quantity over all lines.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	return total
}

// Count returns the total item quantity across all lines, not the line count.
func (c *Cart) Count() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) find(productID string, custom Customization) int {
	for i, line := range c.Lines {
		if line.ProductID == productID && line.Customization == custom {
			return i
		}
	}
	return -1
}
