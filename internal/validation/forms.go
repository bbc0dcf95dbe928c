package validation

import (
	"net/mail"
	"slices"
	"strings"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// MinPasswordLen is the shortest password the signup form accepts.
const MinPasswordLen = 6

// ValidateSignup checks the signup form.
func ValidateSignup(req model.SignupRequest) error {
	var errs ValidationErrors
	if blank(req.Username) {
		errs.add("username", "username is required")
	}
	if blank(req.Email) {
		errs.add("email", "email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs.add("email", "email is not valid")
	}
	switch {
	case req.Password == "":
		errs.add("password", "password is required")
	case len(req.Password) < MinPasswordLen:
		errs.add("password", "password must be at least 6 characters")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		errs.add("confirmPassword", "passwords do not match")
	}
	return errs.err()
}

// ValidateLogin checks the login form.
func ValidateLogin(c model.Credentials) error {
	var errs ValidationErrors
	if blank(c.Username) {
		errs.add("username", "username is required")
	}
	if c.Password == "" {
		errs.add("password", "password is required")
	}
	return errs.err()
}

// ValidateMenuItem checks the admin menu item form.
func ValidateMenuItem(item model.MenuItem) error {
	var errs ValidationErrors
	if blank(item.Name) {
		errs.add("name", "name is required")
	}
	if blank(item.Category) {
		errs.add("category", "category is required")
	}
	if item.Price.IsNegative() {
		errs.add("price", "price cannot be negative")
	}
	return errs.err()
}

// ValidateRoom checks the admin room form.
func ValidateRoom(r model.Room) error {
	var errs ValidationErrors
	if blank(r.Number) {
		errs.add("number", "room number is required")
	}
	if blank(r.Type) {
		errs.add("type", "room type is required")
	}
	if r.PricePerNight.IsNegative() {
		errs.add("pricePerNight", "price cannot be negative")
	}
	if r.Capacity < 1 {
		errs.add("capacity", "capacity must be at least 1")
	}
	if r.Status != "" && !slices.Contains([]string{model.RoomAvailable, model.RoomOccupied, model.RoomMaintenance}, strings.ToUpper(r.Status)) {
		errs.add("status", "unknown room status")
	}
	return errs.err()
}

// ValidateBookingStatus checks an admin status change.
func ValidateBookingStatus(status string) error {
	if slices.Contains(model.BookingStatuses, strings.ToUpper(strings.TrimSpace(status))) {
		return nil
	}
	return ValidationErrors{{Field: "status", Message: "unknown booking status"}}
}
