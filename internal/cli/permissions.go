package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cleaning-console/internal/authz"
	"cleaning-console/pkg/customvalidator"
	apperrors "cleaning-console/pkg/errors"
)

func newPermissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "List the cached permission codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !app.session.Auth.IsAuthenticated(ctx) {
				return apperrors.ErrNoSession
			}

			refresh, _ := cmd.Flags().GetBool("refresh")
			var set authz.PermissionSet
			if refresh || !app.session.Permissions.Loaded(ctx) {
				fetched, err := app.session.Permissions.FetchUserPermissions(ctx)
				if err != nil {
					return err
				}
				set = fetched
			} else {
				set = app.session.Permissions.GetPermissions(ctx)
			}

			if set.Len() == 0 {
				fmt.Fprintln(app.Out, "(no permissions)")
				return nil
			}
			for _, code := range set.Codes() {
				fmt.Fprintln(app.Out, code)
			}
			return nil
		},
	}
	cmd.Flags().Bool("refresh", false, "fetch the set from the backend before listing")
	return cmd
}

func newCanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "can CODE...",
		Short: "Check permission codes against the cached set",
		Long: `Check permission codes against the cached set. Exits with status 1 when
the check is denied or no permission set is loaded.

Examples:
  consolectl can ASSIGNMENT_VIEW
  consolectl can --any PAYROLL_VIEW PAYROLL_MANAGE`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range args {
				if !customvalidator.IsPermissionCode(code) {
					return apperrors.NewInvalidInputError("%q is not a permission code", code)
				}
			}

			anyOf, _ := cmd.Flags().GetBool("any")
			var decision authz.Decision
			if anyOf {
				decision = app.session.Gate.CheckAny(cmd.Context(), args...)
			} else {
				decision = app.session.Gate.CheckAll(cmd.Context(), args...)
			}

			fmt.Fprintf(app.Out, "%s: %s\n", strings.Join(args, ","), decision)
			if !decision.Allowed() {
				return ErrDenied
			}
			return nil
		},
	}
	cmd.Flags().Bool("any", false, "grant when any of the codes is held")
	return cmd
}
