package upload

import (
	"chart-insight-api/internal/domain/upload"
)

func ToResponseUpload(uDomain upload.Upload) Upload {
	var up = Upload{
		ID:             uint64(uDomain.ID),
		OwnerID:        uint64(uDomain.OwnerID),
		FileName:       uDomain.FileName,
		Digest:         uDomain.Digest,
		Annotation:     uDomain.Annotation,
		AnalysisResult: uDomain.AnalysisResult,
		DoesMatch:      uDomain.DoesMatch,
		StorageKey:     uDomain.StorageKey,
		DownloadURL:    uDomain.DownloadURL,
		UploadedAt:     uDomain.UploadedAt,
	}

	return up
}

func ToResponseUploads(upDomain upload.Uploads) Uploads {
	ups := make(Uploads, len(upDomain))
	for idx, u := range upDomain {
		ups[idx] = ToResponseUpload(*u)
	}

	return ups
}
