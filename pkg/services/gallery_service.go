package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"art-space/pkg/assets"
	"art-space/pkg/catalog"
	"art-space/pkg/models"
	"art-space/pkg/resources"
)

// GalleryService turns catalog entries into presentation data
type GalleryService struct {
	bundles  *resources.Set
	resolver assets.Resolver
	logger   *zap.Logger
}

// NewGalleryService creates a gallery service
func NewGalleryService(bundles *resources.Set, resolver assets.Resolver, logger *zap.Logger) *GalleryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{bundles: bundles, resolver: resolver, logger: logger}
}

// Bundles returns the available string bundles
func (g *GalleryService) Bundles() *resources.Set {
	return g.bundles
}

// Catalog returns a catalog reading the strings of bundle
func (g *GalleryService) Catalog(bundle *resources.Bundle) *catalog.Catalog {
	return catalog.New(bundle)
}

// Len returns the number of artworks
func (g *GalleryService) Len() int {
	return g.Catalog(g.bundles.Default()).Len()
}

// ImageRefs returns the image references in catalog order
func (g *GalleryService) ImageRefs() []string {
	return g.Catalog(g.bundles.Default()).ImageRefs()
}

// Artworks returns all artworks in the bundle's locale
func (g *GalleryService) Artworks(bundle *resources.Bundle) ([]models.Artwork, error) {
	return g.Catalog(bundle).List()
}

// View builds the screen for the artwork at position
func (g *GalleryService) View(ctx context.Context, bundle *resources.Bundle, position int) (models.ArtworkView, error) {
	c := g.Catalog(bundle)
	artwork, err := c.At(position)
	if err != nil {
		return models.ArtworkView{}, err
	}

	imageURL, err := g.resolver.URL(ctx, artwork.ImageRef)
	if err != nil {
		return models.ArtworkView{}, fmt.Errorf("resolve image: %w", err)
	}

	return models.ArtworkView{
		Artwork:       artwork,
		Position:      position,
		Total:         c.Len(),
		Caption:       artwork.Caption(),
		ImageURL:      imageURL,
		Locale:        bundle.Locale,
		Number:        position + 1,
		PreviousLabel: bundle.Lookup("previous", "Previous"),
		NextLabel:     bundle.Lookup("next", "Next"),
		AppName:       bundle.Lookup("app_name", "Art Space"),
	}, nil
}

// CatalogPage builds the listing of every artwork
func (g *GalleryService) CatalogPage(ctx context.Context, bundle *resources.Bundle) (models.CatalogPage, error) {
	artworks, err := g.Artworks(bundle)
	if err != nil {
		return models.CatalogPage{}, err
	}

	entries := make([]models.CatalogEntry, 0, len(artworks))
	for i, a := range artworks {
		imageURL, err := g.resolver.URL(ctx, a.ImageRef)
		if err != nil {
			g.logger.Warn("Could not resolve image", zap.String("ref", a.ImageRef), zap.Error(err))
		}
		entries = append(entries, models.CatalogEntry{
			Artwork:  a,
			Position: i,
			Caption:  a.Caption(),
			ImageURL: imageURL,
			Link:     fmt.Sprintf("/artworks/%d", i),
		})
	}

	return models.CatalogPage{
		AppName: bundle.Lookup("app_name", "Art Space"),
		Locale:  bundle.Locale,
		Entries: entries,
	}, nil
}
