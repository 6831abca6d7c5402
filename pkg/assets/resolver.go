// Package assets turns the opaque image reference of an artwork into a URL a
// front end can load.
package assets

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyRef is returned when an artwork has no image reference
var ErrEmptyRef = errors.New("empty image reference")

// Resolver maps an image reference to a loadable URL
type Resolver interface {
	URL(ctx context.Context, imageRef string) (string, error)
}

// LocalResolver serves images from the application's own static directory
type LocalResolver struct {
	BaseURL string
	Ext     string
}

// NewLocalResolver creates a resolver producing BaseURL/<ref><ext>
func NewLocalResolver(baseURL, ext string) *LocalResolver {
	return &LocalResolver{BaseURL: strings.TrimSuffix(baseURL, "/"), Ext: ext}
}

// URL implements Resolver
func (r *LocalResolver) URL(_ context.Context, imageRef string) (string, error) {
	if imageRef == "" {
		return "", ErrEmptyRef
	}
	return r.BaseURL + "/" + url.PathEscape(imageRef) + r.Ext, nil
}

// ObjectName returns the bucket object holding the image for imageRef
func ObjectName(prefix, imageRef, ext string) string {
	return prefix + imageRef + ext
}
