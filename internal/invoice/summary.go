// Package invoice turns a backend invoice into the two-column view the
// billing page shows: room charges on one side, food and room service on
// the other.
package invoice

import (
	"strings"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Summary is the billing view of an invoice. Subtotal, Tax and GrandTotal
// are copied from the backend as-is.
type Summary struct {
	InvoiceID        int64               `json:"invoiceId"`
	BookingID        int64               `json:"bookingId"`
	GuestName        string              `json:"guestName,omitempty"`
	RoomNumber       string              `json:"roomNumber,omitempty"`
	RoomLines        []model.InvoiceLine `json:"roomLines"`
	FoodLines        []model.InvoiceLine `json:"foodLines"`
	RoomTotal        model.Money         `json:"roomTotal"`
	FoodServiceTotal model.Money         `json:"foodServiceTotal"`
	Subtotal         model.Money         `json:"subtotal"`
	Tax              model.Money         `json:"tax"`
	GrandTotal       model.Money         `json:"grandTotal"`
	IssuedAt         string              `json:"issuedAt,omitempty"`
}

// IsRoomLine reports whether a line is a room charge.
func IsRoomLine(l model.InvoiceLine) bool {
	return strings.EqualFold(strings.TrimSpace(l.Category), model.InvoiceCategoryRoom)
}

// Partition splits lines into room charges and everything else, keeping
// the input order within each side.
func Partition(lines []model.InvoiceLine) (room, other []model.InvoiceLine) {
	room = make([]model.InvoiceLine, 0, len(lines))
	other = make([]model.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		if IsRoomLine(l) {
			room = append(room, l)
		} else {
			other = append(other, l)
		}
	}
	return room, other
}

// Sum adds up LineTotal over lines.
func Sum(lines []model.InvoiceLine) model.Money {
	total := model.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}

// Summarize builds the billing view for inv.
func Summarize(inv model.Invoice) Summary {
	room, food := Partition(inv.Items)
	return Summary{
		InvoiceID:        inv.ID,
		BookingID:        inv.BookingID,
		GuestName:        inv.GuestName,
		RoomNumber:       inv.RoomNumber,
		RoomLines:        room,
		FoodLines:        food,
		RoomTotal:        Sum(room),
		FoodServiceTotal: Sum(food),
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		GrandTotal:       inv.GrandTotal,
		IssuedAt:         inv.IssuedAt,
	}
}
