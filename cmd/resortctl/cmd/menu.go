package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

func (a *app) menuCmd() *cobra.Command {
	var category string
	menu := &cobra.Command{
		Use:     "menu",
		Short:   "List the food and room-service menu",
		GroupID: "guest",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			items, err := c.ListMenuItems(cmd.Context(), category)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), items, []string{"ID", "Name", "Category", "Price", "Available"}, menuRows(items))
		},
	}
	menu.Flags().StringVar(&category, "category", "", "only this category")
	return menu
}

func menuRows(items []model.MenuItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10), m.Name, m.Category, m.Price.StringFixed(2), strconv.FormatBool(m.Available),
		})
	}
	return rows
}

func (a *app) ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "orders",
		Short:   "List your food and room-service orders",
		GroupID: "guest",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			orders, err := c.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					strconv.FormatInt(o.ID, 10), o.RoomNumber, strconv.Itoa(len(o.Items)), o.Total.StringFixed(2), o.Status, o.CreatedAt,
				})
			}
			return a.render(cmd.OutOrStdout(), orders, []string{"ID", "Room", "Lines", "Total", "Status", "Created"}, rows)
		},
	}
}
