package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"art-space/pkg/resources"
)

// newListLocalesCmd creates a new command for listing the bundled locales
func newListLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-locales",
		Short: "List the available locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := resources.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, loc := range set.Locales() {
				marker := ""
				if loc == resources.DefaultLocale {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s%s\n", loc, marker)
			}
			return nil
		},
	}
}
