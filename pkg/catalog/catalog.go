// Package catalog supplies the fixed, ordered list of artworks shown by the viewer.
package catalog

import (
	"errors"
	"fmt"

	"art-space/pkg/models"
	"art-space/pkg/resources"
)

// ErrPositionOutOfRange is returned by At for a position outside the catalog
var ErrPositionOutOfRange = errors.New("position out of range")

// entry binds an image asset to the string key its texts are stored under
type entry struct {
	imageRef string
	key      string
}

// entries defines the navigation order
var entries = []entry{
	{imageRef: "image_monalisa", key: "the_mona_lisa"},
	{imageRef: "image_girl_with_a_pearl_earring", key: "girl_with_a_pearl_earring"},
	{imageRef: "image_the_starry_night", key: "the_starry_night"},
	{imageRef: "image_the_kiss", key: "the_kiss"},
	{imageRef: "image_arrangement_in_grey_and_black_no_1", key: "arrangement_in_grey_and_black_no_1"},
}

// Catalog builds artworks from an injected string provider
type Catalog struct {
	res resources.Provider
}

// New creates a catalog reading its strings from res
func New(res resources.Provider) *Catalog {
	return &Catalog{res: res}
}

// Len returns the number of artworks without resolving any string
func (c *Catalog) Len() int {
	return len(entries)
}

// ImageRefs returns the asset identifiers in catalog order
func (c *Catalog) ImageRefs() []string {
	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.imageRef
	}
	return refs
}

// List builds the full list of artworks. The slice is rebuilt on every call.
func (c *Catalog) List() ([]models.Artwork, error) {
	artworks := make([]models.Artwork, 0, len(entries))
	for _, e := range entries {
		a, err := c.build(e)
		if err != nil {
			return nil, err
		}
		artworks = append(artworks, a)
	}
	return artworks, nil
}

// At returns the artwork at position
func (c *Catalog) At(position int) (models.Artwork, error) {
	if position < 0 || position >= len(entries) {
		return models.Artwork{}, fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, position, len(entries)-1)
	}
	return c.build(entries[position])
}

func (c *Catalog) build(e entry) (models.Artwork, error) {
	title, err := c.res.String(e.key)
	if err != nil {
		return models.Artwork{}, fmt.Errorf("artwork %s: %w", e.imageRef, err)
	}
	artist, err := c.res.String(e.key + "_artist")
	if err != nil {
		return models.Artwork{}, fmt.Errorf("artwork %s: %w", e.imageRef, err)
	}
	year, err := c.res.String(e.key + "_year")
	if err != nil {
		return models.Artwork{}, fmt.Errorf("artwork %s: %w", e.imageRef, err)
	}

	// The title doubles as the image description unless a bundle overrides it
	description, err := c.res.String(e.key + "_description")
	if err != nil {
		description = title
	}

	return models.Artwork{
		ImageRef:    e.imageRef,
		Description: description,
		Title:       title,
		Artist:      artist,
		Year:        year,
	}, nil
}
