package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -source=content_cache_interface.go -destination=mocks/content_cache_mock.go -package=mock_interfaces

// IContentCache is a digest-keyed cache for expensive extraction results.
//
// An unavailable backing store degrades to always-absent Get and no-op
// Set; neither ever surfaces an error to the caller. TTL is chosen per
// value class by the caller.
type IContentCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}
