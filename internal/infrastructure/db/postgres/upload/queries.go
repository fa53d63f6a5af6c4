package upload

const (
	SelectUploadByID = `
		SELECT id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
		FROM uploads
		WHERE id = $1
	`
	SelectUploadByDigest = `
		SELECT id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
		FROM uploads
		WHERE content_digest = $1
	`
	SelectUploadsByOwner = `
		SELECT id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
		FROM uploads
		WHERE owner_id = $1
		ORDER BY id
	`
	InsertUpload = `
		INSERT INTO uploads (owner_id, file_name, content, content_digest, annotation, storage_key, download_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
	`
	UpdateUploadAnalysis = `
		UPDATE uploads
		SET analysis_result = $1,
		    does_match = $2
		WHERE id = $3
		RETURNING
		  id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
	`
	DeleteUploadByID = `
		DELETE FROM uploads
		WHERE id = $1
		RETURNING
		  id, owner_id, file_name, content, content_digest, annotation, analysis_result, does_match, storage_key, download_url, uploaded_at
	`
	DeleteUploadsByOwner = `
		DELETE FROM uploads
		WHERE owner_id = $1
	`
)
