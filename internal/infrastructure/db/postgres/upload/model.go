package upload

import (
	"time"
)

type (
	Upload struct {
		ID      uint64
		OwnerID uint64

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
