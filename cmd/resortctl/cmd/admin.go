package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

func (a *app) adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:     "admin",
		Short:   "Manage bookings (admin role required)",
		GroupID: "admin",
	}

	var status string
	list := &cobra.Command{
		Use:   "bookings",
		Short: "List all bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			all, err := c.ListBookings(cmd.Context())
			if err != nil {
				return err
			}
			out := all[:0:0]
			for _, b := range all {
				if status == "" || strings.EqualFold(b.Status, status) {
					out = append(out, b)
				}
			}
			return a.render(cmd.OutOrStdout(), out, bookingHeaders, bookingRows(out))
		},
	}
	list.Flags().StringVar(&status, "status", "", "only bookings in this status")

	setStatus := &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change a booking's status",
		Long:  "Change a booking's status. STATUS is one of " + strings.Join(model.BookingStatuses, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			next := strings.ToUpper(strings.TrimSpace(args[1]))
			if err := validation.ValidateBookingStatus(next); err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			b, err := c.UpdateBookingStatus(cmd.Context(), id, next)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), b, bookingHeaders, bookingRows([]model.Booking{b}))
		},
	}

	del := &cobra.Command{
		Use:   "delete-booking ID",
		Short: "Delete a booking",
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
			if err := c.DeleteBooking(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "booking %d deleted\n", id)
			return err
		},
	}

	admin.AddCommand(list, setStatus, del)
	return admin
}
