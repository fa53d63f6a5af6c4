package upload

import (
	domain "chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/domain/user"
)

func fromDBModel(model *Upload) *domain.Upload {
	var up = &domain.Upload{
		ID:      domain.ID(model.ID),
		OwnerID: user.ID(model.OwnerID),

		FileName:   model.FileName,
		Content:    model.Content,
		Digest:     model.Digest,
		Annotation: model.Annotation,

		AnalysisResult: model.AnalysisResult,
		DoesMatch:      model.DoesMatch,

		StorageKey:  model.StorageKey,
		DownloadURL: model.DownloadURL,

		UploadedAt: model.UploadedAt,
	}

	return up
}

func fromDBModels(models *Uploads) domain.Uploads {
	ups := make(domain.Uploads, len(*models))
	for idx, u := range *models {
		ups[idx] = fromDBModel(u)
	}

	return ups
}
