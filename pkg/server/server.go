// Package server wires configuration, resources, assets and sessions into the
// running web viewer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"art-space/pkg/assets"
	"art-space/pkg/config"
	"art-space/pkg/handlers"
	"art-space/pkg/resources"
	"art-space/pkg/services"
)

// Gallery is a gallery service plus whatever it holds open
type Gallery struct {
	*services.GalleryService
	Bucket *storage.BucketHandle

	client *storage.Client
}

// Close releases the storage client, if any
func (g *Gallery) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// NewGallery builds the gallery service. Images come from the configured bucket
// when there is one, otherwise from the local public directory.
func NewGallery(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Gallery, error) {
	bundles, err := resources.Load()
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	if _, err := bundles.Get(cfg.Locale); err != nil {
		return nil, err
	}

	if !cfg.UsesBucket() {
		resolver := assets.NewLocalResolver("/public/images", cfg.Assets.Ext)
		return &Gallery{GalleryService: services.NewGalleryService(bundles, resolver, logger)}, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bucket := client.Bucket(cfg.Assets.Bucket)
	resolver := assets.NewGCSResolver(bucket, cfg.Assets.Prefix, cfg.Assets.Ext, cfg.Assets.URLTTL, logger)

	return &Gallery{
		GalleryService: services.NewGalleryService(bundles, resolver, logger),
		Bucket:         bucket,
		client:         client,
	}, nil
}

// Server is the web viewer
type Server struct {
	cfg     *config.Config
	gallery *Gallery
	http    *http.Server
	logger  *zap.Logger
}

// New creates a server ready to listen on the configured port
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gallery, err := NewGallery(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionService(gallery.Len(), cfg.Session.TTL, logger)
	h := handlers.New(gallery.GalleryService, sessions, cfg.Server.ViewsDir, cfg.Locale, logger)

	return &Server{
		cfg:     cfg,
		gallery: gallery,
		http: &http.Server{
			Addr:              cfg.ServerAddress(),
			Handler:           h.Routes(cfg.Server.PublicDir),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		if err := s.gallery.Close(); err != nil {
			s.logger.Warn("Error closing storage client", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening",
			zap.String("addr", s.http.Addr),
			zap.Bool("bucket", s.cfg.UsesBucket()),
			zap.String("locale", s.cfg.Locale))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}
