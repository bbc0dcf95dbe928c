package model

// Booking status values.
const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingCancelled  = "CANCELLED"
	BookingCheckedIn  = "CHECKED_IN"
	BookingCheckedOut = "CHECKED_OUT"
)

// BookingStatuses lists every status an admin may set.
var BookingStatuses = []string{
	BookingPending, BookingConfirmed, BookingCancelled, BookingCheckedIn, BookingCheckedOut,
}

// Booking is a guest's reservation of a room for a date range. Dates are
// kept as the YYYY-MM-DD strings the backend exchanges.
type Booking struct {
	ID         int64  `json:"id"`
	RoomID     int64  `json:"roomId"`
	RoomNumber string `json:"roomNumber,omitempty"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone,omitempty"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
	Status     string `json:"status,omitempty"`
	TotalPrice Money  `json:"totalPrice"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// BookingRequest is the payload of the booking form.
type BookingRequest struct {
	RoomID     int64  `json:"roomId"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone,omitempty"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
	Notes      string `json:"notes,omitempty"`
}

// StatusUpdate is the body of PUT /api/bookings/{id}/status.
type StatusUpdate struct {
	Status string `json:"status"`
}
