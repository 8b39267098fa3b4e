package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/gateway"
)

var (
	loginEmail    string
	loginPassword string
	registerName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and merge the guest cart into the account cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Sessions.Login(ctx, loginEmail, passwordOrEnv())
			if err != nil {
				return err
			}
			return printIdentity(cmd, identity, a.Cart.TotalItemCount())
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Sessions.Register(ctx, registerName, loginEmail, passwordOrEnv())
			if err != nil {
				return err
			}
			return printIdentity(cmd, identity, a.Cart.TotalItemCount())
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Sessions.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the session identity and account profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Sessions.Current(ctx)
			if err != nil {
				return err
			}
			if !identity.Authenticated {
				return printIdentity(cmd, identity, a.Cart.TotalItemCount())
			}

			profile, err := gateway.FetchSession(ctx, a.Gateway, a.API.Me)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, map[string]any{"session": identity, "profile": profile})
			}
			fmt.Fprintf(out, "User:   %s <%s>\nRole:   %s\nOwner:  %s (%s)\n",
				profile.UserName, profile.Email, profile.Role, identity.Owner, identity.Mode)
			return nil
		})
	},
}

func passwordOrEnv() string {
	if loginPassword != "" {
		return loginPassword
	}
	return os.Getenv("STOREFRONT_PASSWORD")
}

func printIdentity(cmd *cobra.Command, identity *session.Identity, items int) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]any{"session": identity, "cart_items": items})
	}
	if !identity.Authenticated {
		fmt.Fprintf(out, "Guest session, %d item(s) in cart\n", items)
		return nil
	}
	fmt.Fprintf(out, "Logged in as %s (%s), %d item(s) in cart\n", identity.Owner, identity.Mode, items)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&loginEmail, "email", "", "Account email")
		c.Flags().StringVar(&loginPassword, "password", "", "Account password (or STOREFRONT_PASSWORD)")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVar(&registerName, "user-name", "", "Display name")
	_ = registerCmd.MarkFlagRequired("user-name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
