// Package app assembles the furnishing service from configuration. It is
// shared by the HTTP server and the command-line tool.
package app

import (
	"context"
	"fmt"

	"github.com/decorlens/backend/config"
	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/infrastructure/catalog"
	"github.com/decorlens/backend/internal/infrastructure/storage"
	"github.com/decorlens/backend/internal/infrastructure/taxonomy"
	"github.com/decorlens/backend/internal/infrastructure/vision"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/usecase"
)

// NewCatalog opens the configured catalog backend
func NewCatalog(ctx context.Context, cfg config.CatalogConfig, log logger.Logger) (domain.CatalogRepository, error) {
	switch cfg.Backend {
	case "elasticsearch":
		es, err := catalog.NewElasticsearchCatalog(catalog.ElasticsearchConfig{
			Addresses:      cfg.Elasticsearch.Addresses,
			Username:       cfg.Elasticsearch.Username,
			Password:       cfg.Elasticsearch.Password,
			Index:          cfg.Elasticsearch.Index,
			ApprovedStatus: cfg.ApprovedStatus,
		})
		if err != nil {
			return nil, err
		}
		if err := es.Ping(ctx); err != nil {
			log.Warn("elasticsearch not reachable at startup", map[string]interface{}{
				"addresses": cfg.Elasticsearch.Addresses,
				"error":     err.Error(),
			})
		}
		log.Info("catalog backend ready", map[string]interface{}{
			"backend": cfg.Backend,
			"index":   cfg.Elasticsearch.Index,
		})
		return es, nil

	default:
		mem, err := catalog.LoadMemoryCatalog(cfg.File, cfg.ApprovedStatus)
		if err != nil {
			return nil, err
		}
		log.Info("catalog backend ready", map[string]interface{}{
			"backend":   "memory",
			"file":      cfg.File,
			"documents": mem.Size(),
		})
		return mem, nil
	}
}

// NewImageStore opens the configured image storage
func NewImageStore(ctx context.Context, cfg config.StorageConfig) (domain.ImageStore, error) {
	if cfg.Type == "s3" {
		return storage.NewS3StoreFromEnv(ctx, cfg.Bucket, cfg.Region)
	}
	return storage.NewFileStore(cfg.BaseDir), nil
}

// NewVisionClient returns nil when the vision model is disabled
func NewVisionClient(cfg config.VisionConfig) domain.VisionClient {
	if !cfg.Enabled {
		return nil
	}
	return vision.NewClient(vision.Config{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
}

// NewFurnishingService wires every dependency of the selection engine
func NewFurnishingService(ctx context.Context, cfg *config.Config, log logger.Logger) (*usecase.FurnishingService, error) {
	tax, err := taxonomy.Load(cfg.Taxonomy.File)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	products, err := NewCatalog(ctx, cfg.Catalog, log)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	images, err := NewImageStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open image storage: %w", err)
	}

	visionClient := NewVisionClient(cfg.Vision)
	if visionClient != nil {
		log.Info("vision model enabled", map[string]interface{}{
			"baseUrl": cfg.Vision.BaseURL,
			"model":   cfg.Vision.Model,
		})
	}

	return usecase.NewFurnishingService(
		products,
		tax,
		visionClient,
		images,
		usecase.FurnishingServiceConfig{
			DefaultMaxItems: cfg.Selection.DefaultMaxItems,
			PoolCap:         cfg.Selection.PoolCap,
			Retrieval: usecase.RetrieverConfig{
				CategoryLimit:  cfg.Catalog.CategoryLimit,
				KeywordLimit:   cfg.Catalog.KeywordLimit,
				CategoryLimits: cfg.Catalog.CategoryLimits,
			},
		},
		log,
	), nil
}
