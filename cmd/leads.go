package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saral-ai/landing/pkg/config"
	"github.com/saral-ai/landing/pkg/store"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored early access requests, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLeads,
}

func init() {
	rootCmd.AddCommand(leadsCmd)
	leadsCmd.Flags().IntP("limit", "n", 20, "Maximum number of leads to show")
}

func runLeads(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := store.Open(cfg.LeadsDBPath)
	if err != nil {
		return fmt.Errorf("open lead database: %w", err)
	}
	defer db.Close()

	leads, err := db.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBMITTED\tNAME\tEMAIL\tCOMPANY\tMOBILE\tVARIANT\tCOUNT")
	for _, l := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			l.SubmittedAt.Format("2006-01-02 15:04"), l.Name, l.Email, l.Company, l.Mobile, l.Variant, l.Submissions)
	}
	return w.Flush()
}
