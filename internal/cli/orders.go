package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/spf13/cobra"
)

func newOrdersCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, optionally filtered by status",
		Example: `  storefrontctl orders
  storefrontctl orders --status pending_verification`,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout := &service.CheckoutService{Orders: a.backing.Store}
			orders, err := checkout.ListOrders(cmd.Context(), status)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREFERENCE\tMETHOD\tSTATUS\tTOTAL\tUTR\tCREATED")
			for _, o := range orders {
				utr := "-"
				if o.UTRNumber != nil {
					utr = *o.UTRNumber
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.PaymentReference, o.PaymentMethod, o.Status, o.TotalAmount, utr,
					o.CreatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d orders\n", len(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "pending, pending_payment, pending_verification or completed")
	return cmd
}
