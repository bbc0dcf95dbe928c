// Package mockdata holds the development fixtures: bookings served to the
// admin pages when the backend is not reachable, the seed rooms of the
// local room store, and sample invoices and menu items. Payloads are JSON
// in the same shape the live backend produces.
package mockdata

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

// Rooms returns the fixture room list.
func Rooms() []model.Room {
	return []model.Room{
		{ID: 1, Number: "101", Name: "Garden View", Type: "STANDARD", Description: "Queen bed facing the gardens",
			PricePerNight: model.NewMoney(120), Capacity: 2, Status: model.RoomAvailable},
		{ID: 2, Number: "204", Name: "Ocean Deluxe", Type: "DELUXE", Description: "King bed with a sea-facing balcony",
			PricePerNight: model.NewMoney(210), Capacity: 3, Status: model.RoomAvailable},
		{ID: 3, Number: "PH1", Name: "Palm Penthouse", Type: "SUITE", Description: "Two bedrooms and a private pool",
			PricePerNight: model.NewMoney(640), Capacity: 5, Status: model.RoomMaintenance},
	}
}

// Bookings returns the fixture booking list.
func Bookings() []model.Booking {
	return []model.Booking{
		{ID: 1001, RoomID: 2, RoomNumber: "204", GuestName: "Maria Santos", GuestEmail: "maria@example.com",
			CheckIn: "2026-11-02", CheckOut: "2026-11-06", Guests: 2, Status: model.BookingConfirmed,
			TotalPrice: model.NewMoney(840), CreatedAt: "2026-10-01T09:12:00Z"},
		{ID: 1002, RoomID: 1, RoomNumber: "101", GuestName: "Kenji Ito", GuestEmail: "kenji@example.com",
			CheckIn: "2026-11-10", CheckOut: "2026-11-12", Guests: 1, Status: model.BookingPending,
			TotalPrice: model.NewMoney(240), CreatedAt: "2026-10-03T17:40:00Z"},
		{ID: 1003, RoomID: 3, RoomNumber: "PH1", GuestName: "Amara Okafor", GuestEmail: "amara@example.com",
			CheckIn: "2026-12-24", CheckOut: "2026-12-28", Guests: 4, Status: model.BookingCancelled,
			TotalPrice: model.NewMoney(2560), CreatedAt: "2026-09-20T11:05:00Z"},
	}
}

// taxRate is the fixture tax applied on top of the subtotal.
var taxRate = decimal.RequireFromString("0.10")

// Invoice returns the fixture invoice of a fixture booking. The room line
// follows the booking's room and stay; breakfast is charged per night and
// in-room dining once. It reports false for unknown bookings.
func Invoice(bookingID int64) (model.Invoice, bool) {
	var bk model.Booking
	found := false
	for _, b := range Bookings() {
		if b.ID == bookingID {
			bk, found = b, true
			break
		}
	}
	if !found {
		return model.Invoice{}, false
	}
	var room model.Room
	for _, r := range Rooms() {
		if r.ID == bk.RoomID {
			room = r
			break
		}
	}
	nights, err := validation.Nights(bk.CheckIn, bk.CheckOut)
	if err != nil {
		return model.Invoice{}, false
	}

	n := decimal.NewFromInt(int64(nights))
	items := []model.InvoiceLine{
		{Description: fmt.Sprintf("%s x%d nights", room.Name, nights), Category: model.InvoiceCategoryRoom,
			Quantity: nights, UnitPrice: room.PricePerNight, LineTotal: room.PricePerNight.Mul(n)},
		{Description: "Breakfast buffet", Category: "food", Quantity: nights,
			UnitPrice: model.NewMoney(18), LineTotal: model.NewMoney(18).Mul(n)},
		{Description: "In-room dining", Category: "room-service", Quantity: 1,
			UnitPrice: model.NewMoney(45.5), LineTotal: model.NewMoney(45.5)},
	}
	subtotal := model.Zero
	for _, l := range items {
		subtotal = subtotal.Add(l.LineTotal)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return model.Invoice{
		ID:         5000 + bookingID,
		BookingID:  bookingID,
		GuestName:  bk.GuestName,
		RoomNumber: bk.RoomNumber,
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
		IssuedAt:   bk.CheckOut + "T11:00:00Z",
	}, true
}

// MenuItems returns the fixture menu.
func MenuItems() []model.MenuItem {
	return []model.MenuItem{
		{ID: 1, Name: "Tropical fruit platter", Category: "breakfast", Price: model.NewMoney(12), Available: true},
		{ID: 2, Name: "Grilled mahi-mahi", Category: "mains", Price: model.NewMoney(28), Available: true},
		{ID: 3, Name: "Coconut mojito", Category: "drinks", Price: model.NewMoney(9.5), Available: true},
		{ID: 4, Name: "Key lime pie", Category: "desserts", Price: model.NewMoney(8), Available: false},
	}
}
