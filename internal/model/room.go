package model

// Room status values reported by the resort backend.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

// Room describes a bookable room as returned by GET /api/rooms. Number is
// the door number shown to guests; Capacity is the most guests it takes.
type Room struct {
	ID            int64  `json:"id"`
	Number        string `json:"number"`
	Name          string `json:"name,omitempty"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	PricePerNight Money  `json:"pricePerNight"`
	Capacity      int    `json:"capacity"`
	Status        string `json:"status,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// Availability is the query for GET /api/rooms/availability.
type Availability struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests,omitempty"`
}
