package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saral-ai/landing/pkg/form"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the access form variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		variants := form.BuiltinVariants()
		out := cmd.OutOrStdout()

		for _, name := range variants.Names() {
			v, err := variants.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%d steps, %q)\n", v.Name, len(v.Steps), v.SubmitLabel)
			for i, step := range v.Steps {
				fmt.Fprintf(out, "  %d. %-8s %s  required: %s\n",
					i+1, step.Label, strings.Join(step.Fields, ","), strings.Join(step.Required, ","))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
