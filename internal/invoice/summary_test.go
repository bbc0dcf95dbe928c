package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

func line(desc, cat string, total float64) model.InvoiceLine {
	return model.InvoiceLine{Description: desc, Category: cat, Quantity: 1, UnitPrice: model.NewMoney(total), LineTotal: model.NewMoney(total)}
}

func TestSummarizeSplitsRoomFromEverythingElse(t *testing.T) {
	inv := model.Invoice{
		ID:        7,
		BookingID: 42,
		Items: []model.InvoiceLine{
			line("Deluxe room, 3 nights", "room", 450),
			line("Breakfast", "food", 36.5),
			line("Late checkout", "Room", 40),
			line("Club sandwich", "room-service", 18.25),
			line("Minibar", "", 12),
		},
		Subtotal:   model.NewMoney(556.75),
		Tax:        model.NewMoney(55.68),
		GrandTotal: model.NewMoney(612.43),
	}

	s := Summarize(inv)

	require.Len(t, s.RoomLines, 2)
	require.Len(t, s.FoodLines, 3)
	assert.Equal(t, "Deluxe room, 3 nights", s.RoomLines[0].Description)
	assert.Equal(t, "Late checkout", s.RoomLines[1].Description)
	assert.Equal(t, "Breakfast", s.FoodLines[0].Description)
	assert.Equal(t, "Minibar", s.FoodLines[2].Description)

	assert.True(t, s.RoomTotal.Equal(model.NewMoney(490)), "room total %s", s.RoomTotal)
	assert.True(t, s.FoodServiceTotal.Equal(model.NewMoney(66.75)), "food total %s", s.FoodServiceTotal)
	assert.True(t, s.RoomTotal.Add(s.FoodServiceTotal).Equal(Sum(inv.Items)))
}

func TestSummarizeKeepsServerTotals(t *testing.T) {
	// Tax deliberately does not match any rate so a recomputation would show.
	inv := model.Invoice{
		Items:      []model.InvoiceLine{line("Suite", "room", 100)},
		Subtotal:   model.NewMoney(100),
		Tax:        model.NewMoney(3.33),
		GrandTotal: model.NewMoney(103.33),
	}
	s := Summarize(inv)
	assert.True(t, s.Subtotal.Equal(inv.Subtotal))
	assert.True(t, s.Tax.Equal(inv.Tax))
	assert.True(t, s.GrandTotal.Equal(inv.GrandTotal))
}

func TestSummarizeEmptyInvoice(t *testing.T) {
	s := Summarize(model.Invoice{ID: 1})
	assert.Empty(t, s.RoomLines)
	assert.Empty(t, s.FoodLines)
	assert.NotNil(t, s.RoomLines)
	assert.True(t, s.RoomTotal.IsZero())
	assert.True(t, s.FoodServiceTotal.IsZero())
}

func TestIsRoomLine(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"room", true},
		{" ROOM ", true},
		{"rooms", false},
		{"room-service", false},
		{"food", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRoomLine(model.InvoiceLine{Category: tt.category}), tt.category)
	}
}
