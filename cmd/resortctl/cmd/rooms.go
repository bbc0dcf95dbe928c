package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

func (a *app) roomsCmd() *cobra.Command {
	rooms := &cobra.Command{
		Use:     "rooms",
		Short:   "Browse rooms and availability",
		GroupID: "guest",
	}

	var roomType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			all, err := c.ListRooms(cmd.Context())
			if err != nil {
				return err
			}
			out := all[:0:0]
			for _, r := range all {
				if roomType == "" || strings.EqualFold(r.Type, roomType) {
					out = append(out, r)
				}
			}
			return a.render(cmd.OutOrStdout(), out, roomHeaders, roomRows(out))
		},
	}
	list.Flags().StringVar(&roomType, "type", "", "only rooms of this type")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one room",
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
			r, err := c.GetRoom(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), r, roomHeaders, roomRows([]model.Room{r}))
		},
	}

	var q model.Availability
	avail := &cobra.Command{
		Use:   "availability",
		Short: "List rooms free for a stay, with the estimated price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nights, err := validation.Nights(q.CheckIn, q.CheckOut)
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			free, err := c.RoomAvailability(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(free))
			for _, r := range free {
				total := r.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))
				rows = append(rows, []string{r.Number, r.Type, strconv.Itoa(r.Capacity), r.PricePerNight.StringFixed(2), total.StringFixed(2)})
			}
			return a.render(cmd.OutOrStdout(), free, []string{"Number", "Type", "Capacity", "Per night", fmt.Sprintf("Total (%d nights)", nights)}, rows)
		},
	}
	avail.Flags().StringVar(&q.CheckIn, "check-in", "", "arrival date (YYYY-MM-DD)")
	avail.Flags().StringVar(&q.CheckOut, "check-out", "", "departure date (YYYY-MM-DD)")
	avail.Flags().IntVar(&q.Guests, "guests", 0, "number of guests")
	_ = avail.MarkFlagRequired("check-in")
	_ = avail.MarkFlagRequired("check-out")

	rooms.AddCommand(list, get, avail)
	return rooms
}

var roomHeaders = []string{"ID", "Number", "Name", "Type", "Capacity", "Per night", "Status"}

func roomRows(rooms []model.Room) [][]string {
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10), r.Number, r.Name, r.Type,
			strconv.Itoa(r.Capacity), r.PricePerNight.StringFixed(2), r.Status,
		})
	}
	return rows
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
