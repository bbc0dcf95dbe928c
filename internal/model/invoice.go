package model

// InvoiceCategoryRoom marks charge lines for the room itself. Every other
// category counts as food and room service.
const InvoiceCategoryRoom = "room"

// Invoice is the bill for a booking. Subtotal, Tax and GrandTotal are
// computed by the backend and are never recomputed client side.
type Invoice struct {
	ID         int64         `json:"id"`
	BookingID  int64         `json:"bookingId"`
	GuestName  string        `json:"guestName,omitempty"`
	RoomNumber string        `json:"roomNumber,omitempty"`
	Items      []InvoiceLine `json:"items"`
	Subtotal   Money         `json:"subtotal"`
	Tax        Money         `json:"tax"`
	GrandTotal Money         `json:"grandTotal"`
	IssuedAt   string        `json:"issuedAt,omitempty"`
}

// InvoiceLine is a single charge on an invoice.
type InvoiceLine struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
	LineTotal   Money  `json:"lineTotal"`
}
