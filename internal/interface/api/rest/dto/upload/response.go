package upload

import (
	"time"
)

type (
	Upload struct {
		ID             uint64    `json:"id"`
		OwnerID        uint64    `json:"owner_id"`
		FileName       string    `json:"file_name"`
		Digest         string    `json:"content_digest"`
		Annotation     *string   `json:"annotation,omitempty"`
		AnalysisResult *string   `json:"analysis_result,omitempty"`
		DoesMatch      *bool     `json:"does_match,omitempty"`
		StorageKey     string    `json:"storage_key"`
		DownloadURL    string    `json:"download_url"`
		UploadedAt     time.Time `json:"uploaded_at"`
	}
	Uploads      []Upload
	ResponseData struct {
		Data Uploads `json:"data"`
	}
)
