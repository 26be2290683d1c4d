package domain

import "context"

// CatalogRepository is the document-queryable product catalog.
// Both queries apply the approval status filter and return at most limit products.
type CatalogRepository interface {
	// FindByCategories returns products whose category equals one of the values
	FindByCategories(ctx context.Context, categories []string, limit int) ([]Product, error)
	// FindByKeywords returns products whose keyword set contains one of the values
	FindByKeywords(ctx context.Context, keywords []string, limit int) ([]Product, error)
}

// VisionClient sends an image plus prompt to a vision-capable model
type VisionClient interface {
	SelectProducts(ctx context.Context, input VisionSelectionInput) ([]ExternalPick, error)
	DetectItems(ctx context.Context, image []byte) ([]DetectedItem, error)
}

// ImageStore resolves an object-storage path to image bytes
type ImageStore interface {
	Load(ctx context.Context, path string) ([]byte, error)
}
