package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// newExportCmd creates a new command for exporting the catalog
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "export [format]",
		Short:     "Export the catalog",
		Long:      `Export all artworks in the specified format. Supported formats: json, yaml.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"json", "yaml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}

			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			artworks, err := c.List()
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(artworks, "", "  ")
			case "yaml":
				data, err = yaml.Marshal(artworks)
			default:
				return fmt.Errorf("%w: %s (supported: json, yaml)", ErrUnsupportedFormat, format)
			}
			if err != nil {
				return fmt.Errorf("error marshaling data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
