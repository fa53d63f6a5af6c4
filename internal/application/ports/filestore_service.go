package ports

import (
	"context"

	"chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/domain/user"
)

// FileStore is the content-addressed store for uploaded chart images.
type FileStore interface {
	// Ingest stores raw bytes for an owner, deduplicating by content
	// digest. The bool reports whether a new row was created.
	Ingest(ctx context.Context, ownerID user.ID, raw []byte, displayName string, annotation *string) (*upload.Upload, bool, error)
	Retrieve(ctx context.Context, id upload.ID) (*upload.Upload, error)
	AttachAnalysis(ctx context.Context, id upload.ID, result string, doesMatch *bool) (*upload.Upload, error)
	Delete(ctx context.Context, id upload.ID) error
	ListByOwner(ctx context.Context, ownerID user.ID) (upload.Uploads, error)
}
