package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_Add_MergesIdenticalLines(t *testing.T) {
	cart := NewCart()
	custom := Customization{Size: "Large", Flavor: "Chocolate", Message: "Happy Birthday"}

	cart.Add("p1", "Fudge Cake", 4599, 1, custom)
	cart.Add("p1", "Fudge Cake", 4599, 2, custom)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCart_Add_DifferentCustomizationIsNewLine(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Large", Flavor: "Chocolate"})
	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Small", Flavor: "Chocolate"})
	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Large", Flavor: "Vanilla"})

	assert.Len(t, cart.Lines, 3)
}

func TestCart_Add_MessageDistinguishesLines(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Large", Message: "Congrats"})
	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Large", Message: "Get well"})

	assert.Len(t, cart.Lines, 2)
}

func TestCart_Add_QuantityBelowOneBecomesOne(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 0, Customization{})
	cart.Add("p2", "Cupcakes", 1200, -5, Customization{})

	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, 1, cart.Lines[1].Quantity)
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{})
	cart.Add("p2", "Cupcakes", 1200, 1, Customization{})
	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{})

	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, "p1", cart.Lines[0].ProductID)
	assert.Equal(t, "p2", cart.Lines[1].ProductID)
}

func TestCart_Add_PriceIsSnapshotAtAddTime(t *testing.T) {
	cart := NewCart()
	custom := Customization{Size: "Large"}

	cart.Add("p1", "Fudge Cake", 4599, 1, custom)
	// Catalog price changed; merging into the existing line keeps the snapshot.
	cart.Add("p1", "Fudge Cake", 4999, 1, custom)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(4599), cart.Lines[0].UnitPriceCents)
}

func TestCart_Remove(t *testing.T) {
	cart := NewCart()
	custom := Customization{Size: "Large"}

	cart.Add("p1", "Fudge Cake", 4599, 1, custom)
	cart.Add("p2", "Cupcakes", 1200, 1, Customization{})

	cart.Remove("p1", custom)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, "p2", cart.Lines[0].ProductID)
}

func TestCart_Remove_AbsentLineIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add("p1", "Fudge Cake", 4599, 1, Customization{Size: "Large"})

	cart.Remove("p1", Customization{Size: "Small"})
	cart.Remove("missing", Customization{})

	assert.Len(t, cart.Lines, 1)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart()
	custom := Customization{Size: "Large"}
	cart.Add("p1", "Fudge Cake", 4599, 1, custom)

	cart.SetQuantity("p1", custom, 7)

	assert.Equal(t, 7, cart.Lines[0].Quantity)
}

func TestCart_SetQuantity_BelowOneRemovesLine(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"zero", 0},
		{"negative", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			custom := Customization{Size: "Large"}
			cart.Add("p1", "Fudge Cake", 4599, 2, custom)

			cart.SetQuantity("p1", custom, tt.quantity)

			assert.Empty(t, cart.Lines)
		})
	}
}

func TestCart_SetQuantity_AbsentLineIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add("p1", "Fudge Cake", 4599, 2, Customization{})

	cart.SetQuantity("missing", Customization{}, 5)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCart_TotalCents(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 3, Customization{})
	cart.Add("p2", "Cupcakes", 1200, 2, Customization{})

	assert.Equal(t, int64(3*4599+2*1200), cart.TotalCents())
}

func TestCart_Count_SumsQuantities(t *testing.T) {
	cart := NewCart()

	cart.Add("p1", "Fudge Cake", 4599, 3, Customization{})
	cart.Add("p2", "Cupcakes", 1200, 2, Customization{})

	assert.Equal(t, 5, cart.Count())
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.Add("p1", "Fudge Cake", 4599, 3, Customization{})

	cart.Clear()

	assert.Empty(t, cart.Lines)
	assert.Equal(t, int64(0), cart.TotalCents())
	assert.Equal(t, 0, cart.Count())
}
