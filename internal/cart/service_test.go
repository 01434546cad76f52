package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals_AfterEveryMutation(t *testing.T) {
	s := NewService()

	s.AddItem(Item{ProductID: "p1", UnitPrice: 10.00, Quantity: 2})
	assert.Equal(t, 20.00, s.TotalPrice.Value())
	assert.Equal(t, 2, s.TotalQuantity.Value())

	s.AddItem(Item{ProductID: "p2", UnitPrice: 4.50, Quantity: 1})
	assert.Equal(t, 24.50, s.TotalPrice.Value())
	assert.Equal(t, 3, s.TotalQuantity.Value())

	// Same product merges into the existing line.
	s.AddItem(Item{ProductID: "p1", UnitPrice: 10.00, Quantity: 1})
	assert.Equal(t, 34.50, s.TotalPrice.Value())
	assert.Equal(t, 4, s.TotalQuantity.Value())
	assert.Len(t, s.Items(), 2)

	s.DecrementQuantity("p1")
	assert.Equal(t, 24.50, s.TotalPrice.Value())
	assert.Equal(t, 3, s.TotalQuantity.Value())

	s.Remove("p2")
	assert.Equal(t, 20.00, s.TotalPrice.Value())
	assert.Equal(t, 2, s.TotalQuantity.Value())

	s.Clear()
	assert.Equal(t, 0.0, s.TotalPrice.Value())
	assert.Equal(t, 0, s.TotalQuantity.Value())
	assert.Empty(t, s.Items())
}

func TestDecrementQuantity_RemovesLineAtZero(t *testing.T) {
	s := NewService()
	s.AddItem(Item{ProductID: "p1", UnitPrice: 5, Quantity: 1})

	s.DecrementQuantity("p1")

	assert.Empty(t, s.Items())
	assert.Equal(t, 0.0, s.TotalPrice.Value())
}

func TestSubscribe_ReplaysLatestValue(t *testing.T) {
	s := NewService()
	s.AddItem(Item{ProductID: "p1", UnitPrice: 12.5, Quantity: 2})

	var got []float64
	unsub := s.TotalPrice.Subscribe(func(p float64) { got = append(got, p) })

	// Late subscriber sees the current value immediately.
	require.Equal(t, []float64{25.0}, got)

	s.AddItem(Item{ProductID: "p2", UnitPrice: 1, Quantity: 1})
	require.Equal(t, []float64{25.0, 26.0}, got)

	unsub()
	s.Clear()
	require.Equal(t, []float64{25.0, 26.0}, got)
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := NewService()
	s.AddItem(Item{ProductID: "p1", UnitPrice: 10, Quantity: 1})

	snapshot := s.Items()
	s.AddItem(Item{ProductID: "p1", UnitPrice: 10, Quantity: 4})

	assert.Equal(t, 1, snapshot[0].Quantity)
}

func TestStatusView_TracksTotals(t *testing.T) {
	s := NewService()
	s.AddItem(Item{ProductID: "p1", UnitPrice: 3, Quantity: 3})

	v := NewStatusView(s)
	defer v.Close()

	assert.Equal(t, 9.0, v.TotalPrice())
	assert.Equal(t, 3, v.TotalQuantity())

	s.AddItem(Item{ProductID: "p2", UnitPrice: 1, Quantity: 1})
	assert.Equal(t, 10.0, v.TotalPrice())
	assert.Equal(t, 4, v.TotalQuantity())
}
