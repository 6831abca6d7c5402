package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newShowArtworkCmd creates a new command for showing one artwork
func newShowArtworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-artwork [position]",
		Short: "Show the artwork at a position",
		Long:  `Show every field of the artwork at a zero-based position in the catalog.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}

			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			a, err := c.At(position)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artwork %d of %d\n", position+1, c.Len())
			fmt.Fprintln(out, "================")
			fmt.Fprintf(out, "Title:       %s\n", a.Title)
			fmt.Fprintf(out, "Artist:      %s\n", a.Artist)
			fmt.Fprintf(out, "Year:        %s\n", a.Year)
			fmt.Fprintf(out, "Image:       %s\n", a.ImageRef)
			fmt.Fprintf(out, "Description: %s\n", a.Description)
			return nil
		},
	}
}
