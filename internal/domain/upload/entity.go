package upload

import (
	"time"

	"chart-insight-api/internal/domain/user"
)

type (
	ID uint64
	// Upload is a stored chart image. Content is deduplicated by Digest:
	// two uploads with identical bytes always resolve to the same row.
	Upload struct {
		ID      ID
		OwnerID user.ID

		FileName   string
		Content    []byte
		Digest     string
		Annotation *string

		AnalysisResult *string
		DoesMatch      *bool

		StorageKey  string
		DownloadURL string

		UploadedAt time.Time
	}
	Uploads []*Upload
)
