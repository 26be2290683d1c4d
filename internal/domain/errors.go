package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when a catalog query fails
	ErrCatalogUnavailable = errors.New("catalog query failed")

	// ErrVisionUnavailable is returned when the vision model request fails
	ErrVisionUnavailable = errors.New("vision model request failed")

	// ErrVisionResponse is returned when the vision model answer cannot be parsed
	ErrVisionResponse = errors.New("vision model response unparsable")

	// ErrImageNotFound is returned when an image path does not resolve in storage
	ErrImageNotFound = errors.New("image not found")

	// ErrTaxonomyInvalid is returned when a taxonomy resource cannot be loaded
	ErrTaxonomyInvalid = errors.New("invalid taxonomy")
)
