package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"art-space/pkg/catalog"
	"art-space/pkg/config"
	"art-space/pkg/resources"
)

// Configuration flags
var (
	configPath string
	locale     string
	portNumber string
	bucketName string
	verbose    bool
	logFile    string
)

// logger is built before every command runs
var logger = zap.NewNop()

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "art-space",
		Short: "Art Space shows a small gallery of artworks, one at a time",
		Long: `Art Space displays a fixed gallery of five artworks with Previous and Next
navigation that wraps around. It can serve the gallery as a web page or show it
in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (overrides ARTSPACE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "Locale of the displayed texts (overrides ARTSPACE_LOCALE)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Port of the web server (overrides ARTSPACE_SERVER_PORT)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Cloud Storage bucket holding the images (overrides ARTSPACE_ASSETS_BUCKET)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add commands to root
	rootCmd.AddCommand(newListArtworksCmd())
	rootCmd.AddCommand(newShowArtworkCmd())
	rootCmd.AddCommand(newListLocalesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newSyncImagesCmd())
	rootCmd.AddCommand(newVerifyImagesCmd())

	return rootCmd
}

// newLogger builds a production logger. The terminal viewer owns the screen, so
// it only logs when a log file is given.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if cmd.Name() == "view" && logFile == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	return cfg.Build()
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configPath, cmd.Flags())
}

// loadBundle returns the strings for the configured locale
func loadBundle(cfg *config.Config) (*resources.Bundle, error) {
	set, err := resources.Load()
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	return set.Get(cfg.Locale)
}

// loadCatalog returns the catalog in the configured locale
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	bundle, err := loadBundle(cfg)
	if err != nil {
		return nil, err
	}
	return catalog.New(bundle), nil
}
