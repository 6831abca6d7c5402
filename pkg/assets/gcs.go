package assets

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// URLSigner creates signed URLs for bucket objects. *storage.BucketHandle implements it.
type URLSigner interface {
	SignedURL(object string, opts *storage.SignedURLOptions) (string, error)
}

// GCSResolver hands out signed URLs for images stored in Cloud Storage
type GCSResolver struct {
	signer   URLSigner
	prefix   string
	ext      string
	ttl      time.Duration
	urlCache *cache.Cache
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewGCSResolver creates a resolver signing URLs valid for ttl. Signed URLs are
// cached for a few minutes so a page render does not sign every image again.
func NewGCSResolver(signer URLSigner, prefix, ext string, ttl time.Duration, logger *zap.Logger) *GCSResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GCSResolver{
		signer:   signer,
		prefix:   prefix,
		ext:      ext,
		ttl:      ttl,
		urlCache: cache.New(5*time.Minute, 10*time.Minute),
		logger:   logger,
	}
}

// URL implements Resolver
func (r *GCSResolver) URL(_ context.Context, imageRef string) (string, error) {
	if imageRef == "" {
		return "", ErrEmptyRef
	}
	object := ObjectName(r.prefix, imageRef, r.ext)

	r.mu.RLock()
	if cached, found := r.urlCache.Get(object); found {
		r.mu.RUnlock()
		r.logger.Debug("Using cached signed URL", zap.String("object", object))
		return cached.(string), nil
	}
	r.mu.RUnlock()

	signedURL, err := r.signer.SignedURL(object, &storage.SignedURLOptions{
		Expires: time.Now().Add(r.ttl),
		Method:  http.MethodGet,
	})
	if err != nil {
		return "", fmt.Errorf("sign URL for %s: %w", object, err)
	}

	r.mu.Lock()
	r.urlCache.Set(object, signedURL, cache.DefaultExpiration)
	r.mu.Unlock()

	return signedURL, nil
}

// Flush drops every cached URL, e.g. after images were re-uploaded
func (r *GCSResolver) Flush() {
	r.urlCache.Flush()
}
