package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"art-space/pkg/tui"
)

// newViewCmd creates a new command for the terminal viewer
func newViewCmd() *cobra.Command {
	var start int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the gallery in the terminal",
		Long:  `Browse the gallery in the terminal. Use ←/→ (or p/n) to move, q to quit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			bundle, err := loadBundle(cfg)
			if err != nil {
				return err
			}

			model := tui.New(bundle, start, logger)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal viewer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&start, "start", "s", 0, "Position of the first artwork shown")

	return cmd
}
