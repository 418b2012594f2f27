package catalog

import "context"

// CacheInvalidator descarta el catálogo público cacheado de una empresa tras una escritura.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, string) error { return nil }
