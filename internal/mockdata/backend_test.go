package mockdata

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

func TestLookupBookings(t *testing.T) {
	b := NewBackend()
	raw, ok := b.Lookup(http.MethodGet, "/api/bookings", nil)
	require.True(t, ok)

	var got []model.Booking
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Len(t, got, len(Bookings()))
	assert.Equal(t, "Maria Santos", got[0].GuestName)
}

func TestLookupStatusUpdateMutatesCopy(t *testing.T) {
	b := NewBackend()
	raw, ok := b.Lookup(http.MethodPut, "/api/bookings/1002/status", []byte(`{"status":"confirmed"}`))
	require.True(t, ok)

	var bk model.Booking
	require.NoError(t, json.Unmarshal(raw, &bk))
	assert.Equal(t, model.BookingConfirmed, bk.Status)

	raw, ok = b.Lookup(http.MethodGet, "/api/bookings/1002", nil)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(raw, &bk))
	assert.Equal(t, model.BookingConfirmed, bk.Status)

	// package fixtures stay untouched
	assert.Equal(t, model.BookingPending, Bookings()[1].Status)
}

func TestLookupDelete(t *testing.T) {
	b := NewBackend()
	_, ok := b.Lookup(http.MethodDelete, "/api/bookings/1001", nil)
	require.True(t, ok)
	_, ok = b.Lookup(http.MethodGet, "/api/bookings/1001", nil)
	assert.False(t, ok)
}

func TestLookupUnknown(t *testing.T) {
	b := NewBackend()
	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/bookings/999"},
		{http.MethodGet, "/api/rooms"},
		{http.MethodGet, "/api/menu-items"},
		{http.MethodGet, "/api/bookings/1001/invoice"},
	} {
		_, ok := b.Lookup(tt.method, tt.path, nil)
		assert.False(t, ok, "%s %s", tt.method, tt.path)
	}
}

func TestLookupBookingEdit(t *testing.T) {
	b := NewBackend()
	raw, ok := b.Lookup(http.MethodPut, "/api/bookings/1002", []byte(`{"id":1,"roomId":1,"guestName":"Kenji Ito","checkIn":"2026-11-10","checkOut":"2026-11-13","guests":2}`))
	require.True(t, ok)
	var bk model.Booking
	require.NoError(t, json.Unmarshal(raw, &bk))
	assert.Equal(t, int64(1002), bk.ID, "id comes from the path")
	assert.Equal(t, "2026-11-13", bk.CheckOut)
}

func TestInvoiceFollowsBooking(t *testing.T) {
	for _, bk := range Bookings() {
		inv, ok := Invoice(bk.ID)
		require.True(t, ok)
		assert.Equal(t, bk.GuestName, inv.GuestName)
		assert.Equal(t, bk.RoomNumber, inv.RoomNumber)
		assert.Equal(t, bk.ID, inv.BookingID)

		sum := model.Zero
		for _, l := range inv.Items {
			sum = sum.Add(l.LineTotal)
		}
		assert.True(t, sum.Equal(inv.Subtotal))
		assert.True(t, inv.Subtotal.Add(inv.Tax).Equal(inv.GrandTotal))
		assert.True(t, inv.Items[0].LineTotal.Equal(bk.TotalPrice), "room line matches the booking total for %d", bk.ID)
	}

	inv, _ := Invoice(1002)
	assert.Equal(t, "Kenji Ito", inv.GuestName)
	assert.Equal(t, "101", inv.RoomNumber)

	_, ok := Invoice(42)
	assert.False(t, ok)
}
