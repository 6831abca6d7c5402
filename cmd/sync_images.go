package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"art-space/pkg/assets"
	"art-space/pkg/server"
)

// ErrBucketNotSet is returned by commands that need a bucket when none is configured
var ErrBucketNotSet = errors.New("no bucket configured (set --bucket or ARTSPACE_ASSETS_BUCKET)")

// newSyncImagesCmd creates a new command for uploading the artwork images
func newSyncImagesCmd() *cobra.Command {
	var imagesDir string

	cmd := &cobra.Command{
		Use:   "sync-images",
		Short: "Upload artwork images to the bucket",
		Long: `Upload one image per artwork from a local directory to the configured bucket.
Images that cannot be decoded or are a solid color are skipped.`,
		Args: cobra.NoArgs,
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

			result, err := assets.Sync(cmd.Context(), g.Bucket, imagesDir, cfg.Assets.Prefix, cfg.Assets.Ext, g.ImageRefs(), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploaded: %d\n", len(result.Uploaded))
			failed := make([]string, 0, len(result.Failed))
			for ref := range result.Failed {
				failed = append(failed, ref)
			}
			sort.Strings(failed)
			for _, ref := range failed {
				fmt.Fprintf(out, "  Failed %s: %v\n", ref, result.Failed[ref])
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d images failed to upload", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imagesDir, "images-dir", "d", "public/images", "Directory holding <image ref><ext> files")

	return cmd
}
