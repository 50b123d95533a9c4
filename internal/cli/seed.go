package cli

import (
	"fmt"

	"github.com/Skotchmaster/cyberacademy/internal/bootstrap"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var withAdmin bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample course catalog into an empty store",
		Long: `Load the six sample courses when the catalog is empty. With --admin
the account from ADMIN_USERNAME and ADMIN_PASSWORD is created as well
unless it already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var admin *models.User
			if withAdmin {
				u, err := bootstrap.AdminUser(a.cfg.AdminUsername, a.cfg.AdminPassword)
				if err != nil {
					return fmt.Errorf("hash admin password: %w", err)
				}
				admin = u
			}

			res, err := repo.Seed(ctx, a.backing.Store, admin)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			out := cmd.OutOrStdout()
			if res.Courses == 0 {
				fmt.Fprintln(out, "catalog already populated, no courses added")
			} else {
				fmt.Fprintf(out, "added %d courses\n", res.Courses)
			}
			if res.AdminCreated {
				fmt.Fprintf(out, "created admin %q\n", a.cfg.AdminUsername)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withAdmin, "admin", false, "also create the configured admin account")
	return cmd
}
