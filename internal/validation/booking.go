package validation

import (
	"errors"
	"net/mail"
	"time"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// DateLayout is the date format of check-in and check-out fields.
const DateLayout = "2006-01-02"

// ValidateBooking checks the booking form. Check-out must be strictly
// after check-in.
func ValidateBooking(req model.BookingRequest) error {
	var errs ValidationErrors
	if req.RoomID <= 0 {
		errs.add("roomId", "room is required")
	}
	if blank(req.GuestName) {
		errs.add("guestName", "guest name is required")
	}
	if blank(req.GuestEmail) {
		errs.add("guestEmail", "email is required")
	} else if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		errs.add("guestEmail", "email is not valid")
	}
	if req.Guests < 1 {
		errs.add("guests", "at least one guest is required")
	}

	in, inErr := parseDate(req.CheckIn)
	switch {
	case blank(req.CheckIn):
		errs.add("checkIn", "check-in date is required")
	case inErr != nil:
		errs.add("checkIn", "check-in date must be YYYY-MM-DD")
	}
	out, outErr := parseDate(req.CheckOut)
	switch {
	case blank(req.CheckOut):
		errs.add("checkOut", "check-out date is required")
	case outErr != nil:
		errs.add("checkOut", "check-out date must be YYYY-MM-DD")
	}
	if inErr == nil && outErr == nil && !out.After(in) {
		errs.add("checkOut", "check-out must be after check-in")
	}
	return errs.err()
}

// ValidateBookingUpdate checks an admin edit of a booking: the booking
// form rules plus a known status when one is given.
func ValidateBookingUpdate(b model.Booking) error {
	var errs ValidationErrors
	if err := ValidateBooking(model.BookingRequest{
		RoomID:     b.RoomID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
	}); err != nil {
		var form ValidationErrors
		if !errors.As(err, &form) {
			return err
		}
		errs = append(errs, form...)
	}
	if b.Status != "" && ValidateBookingStatus(b.Status) != nil {
		errs.add("status", "unknown booking status")
	}
	return errs.err()
}

// Nights returns the number of nights between checkIn and checkOut.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return 0, ValidationErrors{{Field: "checkIn", Message: "check-in date must be YYYY-MM-DD"}}
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return 0, ValidationErrors{{Field: "checkOut", Message: "check-out date must be YYYY-MM-DD"}}
	}
	if !out.After(in) {
		return 0, ValidationErrors{{Field: "checkOut", Message: "check-out must be after check-in"}}
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// ValidateStayDates checks an availability query.
func ValidateStayDates(checkIn, checkOut string) error {
	_, err := Nights(checkIn, checkOut)
	return err
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
