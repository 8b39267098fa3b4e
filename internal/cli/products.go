package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
	"github.com/your-org/storefront-client/internal/domain/product"
)

var (
	productSearch string
	productPage   int
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the public catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List public products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			page, err := a.API.ListPublic(ctx, product.ListFilter{Search: productSearch, Page: productPage})
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), page)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatProducts(page.Results))
			return nil
		})
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product with its reviews",
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
			reviews, err := a.API.ProductFeedback(ctx, productID)
			if err != nil {
				a.Logger.WithError(err).Debug("Failed to load product reviews")
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, map[string]any{"product": p, "feedback": reviews})
			}
			fmt.Fprintf(out, "%s (#%d)\nPrice: %s", p.Name, p.ID, p.DiscountedPrice().StringFixed(2))
			if p.Discount.IsPositive() {
				fmt.Fprintf(out, " (%s%% off %s)", p.Discount.String(), p.BasePrice.StringFixed(2))
			}
			fmt.Fprintf(out, "\nStock: %d\n", p.Stock)
			if p.Description != "" {
				fmt.Fprintf(out, "\n%s\n", p.Description)
			}
			for _, r := range reviews {
				fmt.Fprintf(out, "  %s %s\n", strings.Repeat("*", r.Rating), r.Review)
			}
			return nil
		})
	},
}

// formatProducts renders products as a table
func formatProducts(products []product.Product) string {
	if len(products) == 0 {
		return "No products found\n"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDISCOUNT")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s%%\n", p.ID, p.Name, p.DiscountedPrice().StringFixed(2), p.Discount.String())
	}
	_ = tw.Flush()
	return b.String()
}

func init() {
	productsListCmd.Flags().StringVar(&productSearch, "search", "", "Search term")
	productsListCmd.Flags().IntVar(&productPage, "page", 0, "Result page")

	productsCmd.AddCommand(productsListCmd, productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}
