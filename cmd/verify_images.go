package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"art-space/pkg/assets"
	"art-space/pkg/server"
)

// newVerifyImagesCmd creates a new command for checking the bucket holds every image
func newVerifyImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-images",
		Short: "Check that every artwork image exists in the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if !cfg.UsesBucket() {
				return ErrBucketNotSet
			}

			g, err := server.NewGallery(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := g.Close(); err != nil {
					logger.Warn("Error closing storage client", zap.Error(err))
				}
			}()

			missing, err := assets.Verify(cmd.Context(), g.Bucket, cfg.Assets.Prefix, cfg.Assets.Ext, g.ImageRefs())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(missing) == 0 {
				fmt.Fprintf(out, "All %d images present in %s\n", g.Len(), cfg.Assets.Bucket)
				return nil
			}
			for _, ref := range missing {
				fmt.Fprintf(out, "Missing: %s\n", assets.ObjectName(cfg.Assets.Prefix, ref, cfg.Assets.Ext))
			}
			return fmt.Errorf("%d of %d images missing", len(missing), g.Len())
		},
	}
}
