package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/decorlens/backend/internal/domain"
)

// MemoryCatalog is a thread-safe in-memory document catalog with the same
// query semantics as the document store: exact category equality, exact
// keyword membership and an approval status filter
type MemoryCatalog struct {
	docs           []Document
	approvedStatus string
	mutex          sync.RWMutex
}

// NewMemoryCatalog creates a catalog over docs. An empty approvedStatus disables the status filter.
func NewMemoryCatalog(docs []Document, approvedStatus string) *MemoryCatalog {
	stored := make([]Document, len(docs))
	copy(stored, docs)
	return &MemoryCatalog{docs: stored, approvedStatus: approvedStatus}
}

// LoadMemoryCatalog reads a JSON array of documents from path
func LoadMemoryCatalog(path, approvedStatus string) (*MemoryCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = fmt.Sprintf("doc-%d", i+1)
		}
	}
	return NewMemoryCatalog(docs, approvedStatus), nil
}

// FindByCategories returns approved products whose category equals one of categories
func (c *MemoryCatalog) FindByCategories(ctx context.Context, categories []string, limit int) ([]domain.Product, error) {
	wanted := make(map[string]bool, len(categories))
	for _, category := range categories {
		wanted[category] = true
	}
	return c.find(ctx, limit, func(d *Document) bool {
		return wanted[d.Category]
	})
}

// FindByKeywords returns approved products whose keywords contain one of keywords
func (c *MemoryCatalog) FindByKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Product, error) {
	return c.find(ctx, limit, func(d *Document) bool {
		for _, k := range keywords {
			if d.HasKeyword(k) {
				return true
			}
		}
		return false
	})
}

func (c *MemoryCatalog) find(ctx context.Context, limit int, match func(*Document) bool) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var out []domain.Product
	for i := range c.docs {
		if limit > 0 && len(out) >= limit {
			break
		}
		d := &c.docs[i]
		if c.approvedStatus != "" && d.Status != c.approvedStatus {
			continue
		}
		if match(d) {
			out = append(out, d.ToProduct())
		}
	}
	return out, nil
}

// Put adds or replaces a document by id
func (c *MemoryCatalog) Put(doc Document) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i := range c.docs {
		if c.docs[i].ID == doc.ID {
			c.docs[i] = doc
			return
		}
	}
	c.docs = append(c.docs, doc)
}

// Size returns the number of stored documents
func (c *MemoryCatalog) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.docs)
}
