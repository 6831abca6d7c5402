package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListArtworksCmd creates a new command for listing the catalog
func newListArtworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-artworks",
		Short: "List all artworks",
		Long:  `List all artworks in navigation order with their artist and year.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			artworks, err := c.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Artworks:")
			fmt.Fprintln(out, "=========")
			for i, a := range artworks {
				fmt.Fprintf(out, "%d. %s\n", i, a.Title)
				fmt.Fprintf(out, "   %s\n", a.Caption())
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Total: %d artworks\n", len(artworks))
			return nil
		},
	}
}
