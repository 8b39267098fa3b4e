package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/product"
)

var (
	addQuantity  int
	addVariantID int64
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the active cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the active cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return printCart(cmd.OutOrStdout(), a.Cart.Snapshot())
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			p, err := a.API.GetPublic(ctx, productID)
			if err != nil {
				return err
			}

			var variant *product.Variant
			if addVariantID > 0 {
				variant = &product.Variant{ID: addVariantID}
			}

			item := a.Cart.AddItem(ctx, *p, variant, addQuantity)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s x%d in cart (line %s)\n", item.Product.Name, item.Quantity, item.ID)
			return nil
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <item-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Cart.UpdateQuantity(ctx, args[0], quantity) {
				return cart.ErrItemNotFound
			}
			return printCart(cmd.OutOrStdout(), a.Cart.Snapshot())
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Cart.RemoveItem(ctx, args[0]) {
				return cart.ErrItemNotFound
			}
			return printCart(cmd.OutOrStdout(), a.Cart.Snapshot())
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			a.Cart.Clear(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
			return nil
		})
	},
}

func printCart(w io.Writer, snapshot cart.Snapshot) error {
	if jsonOutput {
		return printJSON(w, snapshot)
	}
	fmt.Fprint(w, formatCart(snapshot))
	return nil
}

// formatCart renders a snapshot as a table
func formatCart(snapshot cart.Snapshot) string {
	if len(snapshot.Items) == 0 {
		return fmt.Sprintf("Cart of %s is empty\n", snapshot.Owner)
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range snapshot.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.ID, item.Product.Name, item.Quantity, item.UnitPrice().StringFixed(2), item.Subtotal().StringFixed(2))
	}
	_ = tw.Flush()

	fmt.Fprintf(&b, "Owner: %s  Items: %d  Total: %s\n", snapshot.Owner, snapshot.Totals.ItemCount, snapshot.Totals.TotalPrice.StringFixed(2))
	return b.String()
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "Quantity to add")
	cartAddCmd.Flags().Int64Var(&addVariantID, "variant", 0, "Variant id")

	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
