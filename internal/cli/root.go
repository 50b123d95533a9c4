// Package cli implements storefrontctl, the operator tool for durable
// stores.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/bootstrap"
	"github.com/Skotchmaster/cyberacademy/internal/config"
	"github.com/spf13/cobra"
)

const openTimeout = 10 * time.Second

type app struct {
	cfg     config.Config
	backing *bootstrap.Backing
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Operator tool for the CyberAcademy storefront",
		Long: `storefrontctl works directly against the storefront database.

It seeds the sample catalog, creates admin accounts and lists orders,
for example to find manual payments waiting for verification.
STORAGE_DRIVER must be sqlite or postgres and DATABASE_URL must be set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.backing != nil {
				a.backing.Close()
			}
		},
	}

	root.AddCommand(newSeedCmd(a), newCreateAdminCmd(a), newOrdersCmd(a))
	return root
}

func (a *app) open(ctx context.Context) error {
	a.cfg = config.Load()
	switch a.cfg.StorageDriver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %s or %s, got %q", config.DriverSQLite, config.DriverPostgres, a.cfg.StorageDriver)
	}
	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	openCtx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	b, err := bootstrap.OpenStore(openCtx, a.cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.backing = b
	return nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
