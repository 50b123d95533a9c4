package cli

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(a *app) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := &service.AuthService{Users: a.backing.Store}

			var emailPtr *string
			if email != "" {
				emailPtr = &email
			}
			user, err := auth.CreateAdmin(cmd.Context(), username, password, emailPtr)
			if err != nil {
				if errors.Is(err, service.ErrConflict) {
					return fmt.Errorf("admin %q already exists", username)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
