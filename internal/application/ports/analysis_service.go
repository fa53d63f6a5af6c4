package ports

import (
	"context"

	"chart-insight-api/internal/domain/upload"
)

type AnalysisService interface {
	// AnalyzeUpload runs an insight analysis over a stored image and
	// persists the result on the row.
	AnalyzeUpload(ctx context.Context, id upload.ID, prompt string) (*upload.Upload, error)
	// ValidateDescription checks a user-supplied description against the
	// stored image; persists both the result text and the match flag.
	ValidateDescription(ctx context.Context, id upload.ID, description, prompt string) (*upload.Upload, error)
}
