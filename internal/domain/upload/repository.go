package upload

import (
	"context"

	"chart-insight-api/internal/domain/user"
)

type Repository interface {
	FetchUploadByID(ctx context.Context, id ID) (*Upload, error)
	FetchUploadByDigest(ctx context.Context, digest string) (*Upload, error)
	FetchUploadsByOwner(ctx context.Context, ownerID user.ID) (Uploads, error)
	CreateUpload(ctx context.Context, req *Upload) (*Upload, error)
	UpdateAnalysis(ctx context.Context, id ID, result string, doesMatch *bool) (*Upload, error)
	DeleteUpload(ctx context.Context, id ID) (*Upload, error)
	DeleteUploadsByOwner(ctx context.Context, ownerID user.ID) error
}
