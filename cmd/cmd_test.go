package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"art-space/pkg/catalog"
	"art-space/pkg/models"
	"art-space/pkg/resources"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ARTSPACE_CONFIG", "")
	t.Setenv("ARTSPACE_LOCALE", "")
	t.Setenv("ARTSPACE_ASSETS_BUCKET", "")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListArtworks(t *testing.T) {
	out, err := run(t, "list-artworks")
	require.NoError(t, err)

	assert.Contains(t, out, "0. The Mona Lisa")
	assert.Contains(t, out, "   Leonardo da Vinci (1503)")
	assert.Contains(t, out, "4. Arrangement in Grey and Black No. 1")
	assert.Contains(t, out, "Total: 5 artworks")
}

func TestListArtworksLocalized(t *testing.T) {
	out, err := run(t, "--locale", "nl", "list-artworks")
	require.NoError(t, err)
	assert.Contains(t, out, "0. De Mona Lisa")
}

func TestUnknownLocale(t *testing.T) {
	_, err := run(t, "--locale", "xx", "list-artworks")
	assert.ErrorIs(t, err, resources.ErrUnknownLocale)
}

func TestShowArtwork(t *testing.T) {
	out, err := run(t, "show-artwork", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Artwork 5 of 5")
	assert.Contains(t, out, "Artist:      James McNeill Whistler")
	assert.Contains(t, out, "Year:        1871")
	assert.Contains(t, out, "Image:       image_arrangement_in_grey_and_black_no_1")
}

func TestShowArtworkErrors(t *testing.T) {
	_, err := run(t, "show-artwork", "5")
	assert.ErrorIs(t, err, catalog.ErrPositionOutOfRange)

	_, err = run(t, "show-artwork", "abc")
	assert.Error(t, err)

	_, err = run(t, "show-artwork")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	out, err := run(t, "export")
	require.NoError(t, err)

	var artworks []models.Artwork
	require.NoError(t, json.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 5)
	assert.Equal(t, "Girl with a Pearl Earring", artworks[1].Title)
}

func TestExportYAML(t *testing.T) {
	out, err := run(t, "export", "yaml")
	require.NoError(t, err)

	var artworks []models.Artwork
	require.NoError(t, yaml.Unmarshal([]byte(out), &artworks))
	require.Len(t, artworks, 5)
	assert.Equal(t, "image_the_kiss", artworks[3].ImageRef)
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := run(t, "export", "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestListLocales(t *testing.T) {
	out, err := run(t, "list-locales")
	require.NoError(t, err)
	assert.Equal(t, "en (default)\nnl\n", out)
}

func TestBucketCommandsNeedBucket(t *testing.T) {
	_, err := run(t, "sync-images")
	assert.ErrorIs(t, err, ErrBucketNotSet)

	_, err = run(t, "verify-images")
	assert.ErrorIs(t, err, ErrBucketNotSet)
}
