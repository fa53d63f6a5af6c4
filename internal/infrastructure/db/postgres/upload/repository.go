package upload

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/domain/user"
	"chart-insight-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanRow(row pgx.Row) (*domain.Upload, error) {
	up := new(Upload)
	err := row.Scan(
		&up.ID,
		&up.OwnerID,

		&up.FileName,
		&up.Content,
		&up.Digest,
		&up.Annotation,

		&up.AnalysisResult,
		&up.DoesMatch,

		&up.StorageKey,
		&up.DownloadURL,

		&up.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(up), nil
}

func (r *Repository) FetchUploadByID(ctx context.Context, id domain.ID) (*domain.Upload, error) {
	up, err := r.scanRow(r.db.QueryRow(ctx, SelectUploadByID, uint64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return up, nil
}

func (r *Repository) FetchUploadByDigest(ctx context.Context, digest string) (*domain.Upload, error) {
	up, err := r.scanRow(r.db.QueryRow(ctx, SelectUploadByDigest, digest))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return up, nil
}

func (r *Repository) FetchUploadsByOwner(ctx context.Context, ownerID user.ID) (domain.Uploads, error) {
	rows, err := r.db.Query(ctx, SelectUploadsByOwner, uint64(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ups Uploads
	for rows.Next() {
		up := new(Upload)

		if err = rows.Scan(
			&up.ID,
			&up.OwnerID,

			&up.FileName,
			&up.Content,
			&up.Digest,
			&up.Annotation,

			&up.AnalysisResult,
			&up.DoesMatch,

			&up.StorageKey,
			&up.DownloadURL,

			&up.UploadedAt,
		); err != nil {
			return nil, err
		}

		ups = append(ups, up)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ups), nil
}

func (r *Repository) CreateUpload(ctx context.Context, req *domain.Upload) (*domain.Upload, error) {
	up, err := r.scanRow(r.db.QueryRow(
		ctx,
		InsertUpload,
		uint64(req.OwnerID), req.FileName, req.Content, req.Digest, req.Annotation, req.StorageKey, req.DownloadURL,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrDigestAlreadyExists
		}
		return nil, err
	}

	return up, nil
}

func (r *Repository) UpdateAnalysis(ctx context.Context, id domain.ID, result string, doesMatch *bool) (*domain.Upload, error) {
	up, err := r.scanRow(r.db.QueryRow(ctx, UpdateUploadAnalysis, result, doesMatch, uint64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return up, nil
}

func (r *Repository) DeleteUpload(ctx context.Context, id domain.ID) (*domain.Upload, error) {
	up, err := r.scanRow(r.db.QueryRow(ctx, DeleteUploadByID, uint64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return up, nil
}

func (r *Repository) DeleteUploadsByOwner(ctx context.Context, ownerID user.ID) error {
	_, err := r.db.Exec(ctx, DeleteUploadsByOwner, uint64(ownerID))
	return err
}
