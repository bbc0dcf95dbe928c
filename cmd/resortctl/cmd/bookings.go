package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/palm-beach-resort/internal/invoice"
	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

var bookingHeaders = []string{"ID", "Room", "Guest", "Email", "Check-in", "Check-out", "Guests", "Status", "Total"}

func bookingRows(bookings []model.Booking) [][]string {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		room := b.RoomNumber
		if room == "" {
			room = strconv.FormatInt(b.RoomID, 10)
		}
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10), room, b.GuestName, b.GuestEmail,
			b.CheckIn, b.CheckOut, strconv.Itoa(b.Guests), b.Status, b.TotalPrice.StringFixed(2),
		})
	}
	return rows
}

func (a *app) bookingCmd() *cobra.Command {
	booking := &cobra.Command{
		Use:     "booking",
		Short:   "Book a stay and read bookings and invoices",
		GroupID: "guest",
	}

	var req model.BookingRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Book a room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.ValidateBooking(req); err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			b, err := c.CreateBooking(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), b, bookingHeaders, bookingRows([]model.Booking{b}))
		},
	}
	f := create.Flags()
	f.Int64Var(&req.RoomID, "room", 0, "room id")
	f.StringVar(&req.GuestName, "name", "", "guest full name")
	f.StringVar(&req.GuestEmail, "email", "", "guest email")
	f.StringVar(&req.GuestPhone, "phone", "", "guest phone")
	f.StringVar(&req.CheckIn, "check-in", "", "arrival date (YYYY-MM-DD)")
	f.StringVar(&req.CheckOut, "check-out", "", "departure date (YYYY-MM-DD)")
	f.IntVar(&req.Guests, "guests", 1, "number of guests")
	f.StringVar(&req.Notes, "notes", "", "requests for the front desk")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			b, err := c.GetBooking(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), b, bookingHeaders, bookingRows([]model.Booking{b}))
		},
	}

	inv := &cobra.Command{
		Use:   "invoice ID",
		Short: "Show the invoice of a booking split into room and food charges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			raw, err := c.GetInvoice(cmd.Context(), id)
			if err != nil {
				return err
			}
			s := invoice.Summarize(raw)
			return a.render(cmd.OutOrStdout(), s, []string{"Section", "Description", "Qty", "Unit", "Amount"}, invoiceRows(s))
		},
	}

	booking.AddCommand(create, get, inv)
	return booking
}

func invoiceRows(s invoice.Summary) [][]string {
	var rows [][]string
	lines := func(section string, ls []model.InvoiceLine) {
		for _, l := range ls {
			rows = append(rows, []string{section, l.Description, strconv.Itoa(l.Quantity), l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2)})
		}
	}
	lines("Room", s.RoomLines)
	rows = append(rows, []string{"", "Room total", "", "", s.RoomTotal.StringFixed(2)})
	lines("Food & service", s.FoodLines)
	rows = append(rows,
		[]string{"", "Food & service total", "", "", s.FoodServiceTotal.StringFixed(2)},
		[]string{"", "Subtotal", "", "", s.Subtotal.StringFixed(2)},
		[]string{"", "Tax", "", "", s.Tax.StringFixed(2)},
		[]string{"", fmt.Sprintf("Grand total (invoice %d)", s.InvoiceID), "", "", s.GrandTotal.StringFixed(2)},
	)
	return rows
}
