package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/decorlens/backend/config"
	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/infrastructure/storage"
	"github.com/decorlens/backend/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":"sofa-1","name":"Grey Sofa","category":"sofa","status":"approved","price":500}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			Backend:        "memory",
			File:           writeCatalog(t),
			ApprovedStatus: "approved",
			CategoryLimit:  30,
			KeywordLimit:   20,
		},
		Selection: config.SelectionConfig{DefaultMaxItems: 4, PoolCap: 50},
		Storage:   config.StorageConfig{Type: "file", BaseDir: t.TempDir()},
	}
}

func TestNewFurnishingService_MemoryBackend(t *testing.T) {
	cfg := testConfig(t)

	service, err := NewFurnishingService(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)

	result, err := service.Recommend(context.Background(), &domain.SelectionRequest{
		Style:      domain.StyleModern,
		Categories: []string{"sf"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "sofa-1", result.Items[0].ProductID)
	assert.Equal(t, "sf", result.Items[0].Category)
}

func TestNewFurnishingService_MissingCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewFurnishingService(context.Background(), cfg, logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestNewFurnishingService_BadTaxonomyFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Taxonomy.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewFurnishingService(context.Background(), cfg, logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestNewVisionClient(t *testing.T) {
	assert.Nil(t, NewVisionClient(config.VisionConfig{Enabled: false}))
	assert.NotNil(t, NewVisionClient(config.VisionConfig{Enabled: true, APIKey: "k"}))
}

func TestNewImageStore_File(t *testing.T) {
	store, err := NewImageStore(context.Background(), config.StorageConfig{Type: "file", BaseDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, store)
}
