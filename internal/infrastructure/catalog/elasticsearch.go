package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/decorlens/backend/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
)

const defaultIndex = "products"

// ElasticsearchConfig configures the Elasticsearch-backed catalog
type ElasticsearchConfig struct {
	Addresses      []string
	Username       string
	Password       string
	Index          string
	ApprovedStatus string
}

// ElasticsearchCatalog queries product documents stored in an Elasticsearch
// index. category, keywords, tags and status are expected to be keyword fields.
type ElasticsearchCatalog struct {
	client         *elasticsearch.Client
	index          string
	approvedStatus string
}

// NewElasticsearchCatalog creates the client; it does not contact the cluster
func NewElasticsearchCatalog(cfg ElasticsearchConfig) (*ElasticsearchCatalog, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = defaultIndex
	}

	return &ElasticsearchCatalog{
		client:         es,
		index:          index,
		approvedStatus: cfg.ApprovedStatus,
	}, nil
}

// Ping tests the Elasticsearch connection
func (c *ElasticsearchCatalog) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// FindByCategories runs a terms query on the category field
func (c *ElasticsearchCatalog) FindByCategories(ctx context.Context, categories []string, limit int) ([]domain.Product, error) {
	return c.search(ctx, limit, map[string]interface{}{
		"terms": map[string]interface{}{"category": categories},
	})
}

// FindByKeywords matches the keywords or tags arrays against any of keywords
func (c *ElasticsearchCatalog) FindByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Product, error) {
	return c.search(ctx, limit, map[string]interface{}{
		"bool": map[string]interface{}{
			"should": []interface{}{
				map[string]interface{}{"terms": map[string]interface{}{"keywords": keywords}},
				map[string]interface{}{"terms": map[string]interface{}{"tags": keywords}},
			},
			"minimum_should_match": 1,
		},
	})
}

// buildSearchBody combines a match clause with the approval status filter
func (c *ElasticsearchCatalog) buildSearchBody(limit int, clause map[string]interface{}) map[string]interface{} {
	filters := []interface{}{clause}
	if c.approvedStatus != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"status": c.approvedStatus},
		})
	}
	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *ElasticsearchCatalog) search(ctx context.Context, limit int, clause map[string]interface{}) ([]domain.Product, error) {
	body, err := json.Marshal(c.buildSearchBody(limit, clause))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", domain.ErrCatalogUnavailable, err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: status %s: %s", domain.ErrCatalogUnavailable, res.Status(), string(msg))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		doc := hit.Source
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		products = append(products, doc.ToProduct())
	}
	return products, nil
}
