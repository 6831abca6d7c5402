package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

const (
	// colorDifferenceThreshold defines the minimum difference between color components
	// to consider two pixels as different colors (accounts for compression artifacts)
	colorDifferenceThreshold = 256 // About 1 unit difference in 8-bit color
)

// ErrSolidColor is returned for an image whose sampled pixels are all the same color
var ErrSolidColor = errors.New("image appears to be a solid color")

// SyncResult summarizes an upload run
type SyncResult struct {
	Uploaded []string
	Failed   map[string]error
}

// Sync uploads <dir>/<ref><ext> for every ref to <prefix><ref><ext> in the bucket.
// Files that are missing or fail validation are recorded in Failed and do not stop the run.
func Sync(ctx context.Context, bucket *storage.BucketHandle, dir, prefix, ext string, refs []string, logger *zap.Logger) (SyncResult, error) {
	result := SyncResult{Failed: map[string]error{}}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		src := filepath.Join(dir, ref+ext)
		dst := ObjectName(prefix, ref, ext)

		if err := ValidateImage(src); err != nil {
			logger.Warn("Skipping image", zap.String("ref", ref), zap.Error(err))
			result.Failed[ref] = err
			continue
		}

		if err := Upload(ctx, bucket, src, dst); err != nil {
			logger.Warn("Upload failed", zap.String("ref", ref), zap.Error(err))
			result.Failed[ref] = err
			continue
		}

		logger.Info("Uploaded image", zap.String("ref", ref), zap.String("object", dst))
		result.Uploaded = append(result.Uploaded, ref)
	}

	return result, nil
}

// Verify lists the bucket and returns the refs that have no image object
func Verify(ctx context.Context, bucket *storage.BucketHandle, prefix, ext string, refs []string) ([]string, error) {
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	names, err := collectNames(it.Next)
	if err != nil {
		return nil, err
	}
	return missingRefs(names, prefix, ext, refs), nil
}

func collectNames(next func() (*storage.ObjectAttrs, error)) (map[string]bool, error) {
	names := make(map[string]bool)
	for {
		obj, err := next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		names[obj.Name] = true
	}
	return names, nil
}

func missingRefs(names map[string]bool, prefix, ext string, refs []string) []string {
	var missing []string
	for _, ref := range refs {
		if !names[ObjectName(prefix, ref, ext)] {
			missing = append(missing, ref)
		}
	}
	return missing
}

// Upload writes a local file to a bucket object
func Upload(ctx context.Context, bucket *storage.BucketHandle, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	dst = strings.TrimPrefix(dst, "/")

	writer := bucket.Object(dst).NewWriter(ctx)
	writer.ContentType = contentType(filepath.Ext(src))

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("Writer.Write: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	return nil
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// ValidateImage checks that the file decodes and is not a solid color
func ValidateImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	return checkNotSolid(img)
}

func checkNotSolid(img image.Image) error {
	bounds := img.Bounds()

	// Sample a 10x10 grid
	sampleSize := 10
	stepX := bounds.Dx() / sampleSize
	stepY := bounds.Dy() / sampleSize
	if stepX == 0 {
		stepX = 1
	}
	if stepY == 0 {
		stepY = 1
	}

	r1, g1, b1, a1 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()

	differentPixels := 0
	totalSamples := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			totalSamples++
			r2, g2, b2, a2 := img.At(x, y).RGBA()

			if differs(r1, r2) || differs(g1, g2) || differs(b1, b2) || differs(a1, a2) {
				differentPixels++
			}
		}
	}

	if totalSamples > 0 && float64(differentPixels)/float64(totalSamples) < 0.01 {
		return fmt.Errorf("%w (only %d/%d sampled pixels differ)", ErrSolidColor, differentPixels, totalSamples)
	}

	return nil
}

func differs(a, b uint32) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d > colorDifferenceThreshold
}
