package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
	"github.com/your-org/storefront-client/internal/gateway"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Order everything in the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			placed, err := a.Checkout.Checkout(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), placed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d placed, total %s\n", placed.ID, placed.TotalPrice.StringFixed(2))
			return nil
		})
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			orders, err := gateway.FetchSession(ctx, a.Gateway, a.API.MyOrders)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, orders)
			}
			if len(orders) == 0 {
				fmt.Fprintln(out, "No orders yet")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tPLACED\tLINES\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), len(o.Items), o.TotalPrice.StringFixed(2))
			}
			return tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd, ordersCmd)
}
