package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleaning-console/internal/dto"
)

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			session, err := app.session.Auth.Login(cmd.Context(), dto.LoginDTO{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Logged in as %s (%s)\n", session.Username, session.RoleName)
			if !app.session.Permissions.Loaded(cmd.Context()) {
				fmt.Fprintln(app.Out, "Permissions could not be loaded; run 'consolectl permissions --refresh'.")
			}
			return nil
		},
	}
	cmd.Flags().StringP("username", "u", "", "account username")
	cmd.Flags().StringP("password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.session.Auth.GetCurrentUser(cmd.Context())
			if user == nil {
				fmt.Fprintln(app.Out, "Not logged in.")
				return nil
			}

			fmt.Fprintf(app.Out, "User ID:   %d\n", user.UserID)
			fmt.Fprintf(app.Out, "Username:  %s\n", user.Username)
			fmt.Fprintf(app.Out, "Role:      %s\n", user.RoleName)
			fmt.Fprintf(app.Out, "User type: %s\n", user.UserType)
			fmt.Fprintf(app.Out, "State:     %s\n", app.session.Auth.State(cmd.Context()))
			return nil
		},
	}
}
