// Package queue carries booking events over RabbitMQ: a publisher used by
// the booking handler and a consumer that appends each event to the
// booking log.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after the upstream accepted a booking.
// It carries enough for the log consumer without another upstream call.
type BookingCreatedEvent struct {
	EventID    string      `json:"event_id"`
	BookingID  int64       `json:"booking_id"`
	RoomID     int64       `json:"room_id"`
	RoomNumber string      `json:"room_number,omitempty"`
	GuestName  string      `json:"guest_name"`
	GuestEmail string      `json:"guest_email"`
	CheckIn    string      `json:"check_in"`
	CheckOut   string      `json:"check_out"`
	Nights     int         `json:"nights"`
	Guests     int         `json:"guests"`
	Status     string      `json:"status"`
	TotalPrice model.Money `json:"total_price"`
	CreatedAt  string      `json:"created_at"`
}

// NewBookingCreated builds the event for a booking the upstream returned.
func NewBookingCreated(b model.Booking, nights int, now time.Time) BookingCreatedEvent {
	return BookingCreatedEvent{
		EventID:    uuid.NewString(),
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		RoomNumber: b.RoomNumber,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     nights,
		Guests:     b.Guests,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  now.UTC().Format(time.RFC3339),
	}
}
