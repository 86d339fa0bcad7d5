package http

import (
	"context"

	"dashpulse/internal/services"
)

// CatalogServiceInterface is the catalog pipeline surface consumed by the
// handlers. Satisfied by *services.CatalogService; tests substitute fakes.
type CatalogServiceInterface interface {
	Meta(ctx context.Context) (*services.CatalogMeta, error)
	Compute(ctx context.Context, req services.CatalogRequest) (*services.CatalogSnapshot, error)
}

// OutageServiceInterface is the outage pipeline surface consumed by the
// handlers.
type OutageServiceInterface interface {
	Meta(ctx context.Context) (*services.OutageMeta, error)
	Compute(ctx context.Context, req services.OutageRequest) (*services.OutageSnapshot, error)
}
