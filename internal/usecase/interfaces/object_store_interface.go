package interfaces

import "context"

//go:generate mockgen -source=object_store_interface.go -destination=mocks/object_store_mock.go -package=mock_interfaces

// IObjectStore abstracts blob storage (e.g. S3) for uploads and generated
// proposal documents.
type IObjectStore interface {
	// Put stores data under key and returns a locator for later retrieval.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	// PresignedUploadURL returns a time-limited URL a client can PUT to.
	PresignedUploadURL(ctx context.Context, key, contentType string) (string, error)
}
