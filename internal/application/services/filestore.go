package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"chart-insight-api/internal/application/ports"
	domain "chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/domain/user"
	uploadDB "chart-insight-api/internal/infrastructure/db/postgres/upload"
	"chart-insight-api/internal/infrastructure/mq"
	uploadDTO "chart-insight-api/internal/interface/api/rest/dto/upload"
)

const maxBaseNameLen = 100

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUploadNotFound = errors.New("upload not found")
	ErrEmptyUpload    = errors.New("upload content must not be empty")
)

type FileStoreService struct {
	uploadRepository domain.Repository
	userRepository   user.Repository
	s3               ports.S3Client
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
	logger           *zap.Logger
}

func NewFileStoreService(
	uploadRepository domain.Repository,
	userRepository user.Repository,
	s3 ports.S3Client,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileStore {
	return &FileStoreService{
		uploadRepository: uploadRepository,
		userRepository:   userRepository,
		s3:               s3,
		mq:               mqc,
		mCounter:         mCounter,
		logger:           logger,
	}
}

// Ingest stores raw bytes under a SHA-256 content digest. Identical bytes
// always resolve to the same row: the first upload's name and annotation
// stick, later calls get the existing record back untouched.
func (fs *FileStoreService) Ingest(
	ctx context.Context,
	ownerID user.ID,
	raw []byte,
	displayName string,
	annotation *string,
) (*domain.Upload, bool, error) {
	if len(raw) == 0 {
		return nil, false, ErrEmptyUpload
	}

	sum := sha256.Sum256(raw)
	digest := hex.EncodeToString(sum[:])

	existing, err := fs.uploadRepository.FetchUploadByDigest(ctx, digest)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	owner, err := fs.userRepository.FetchUserByID(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	if owner == nil {
		return nil, false, ErrUserNotFound
	}

	fileName := filepath.Base(sanitizeFileName(displayName))
	storageKey := genStorageKey(digest, fileName)

	up := &domain.Upload{
		OwnerID:     ownerID,
		FileName:    fileName,
		Content:     raw,
		Digest:      digest,
		Annotation:  annotation,
		StorageKey:  storageKey,
		DownloadURL: fs.s3.GetPublicURL(storageKey),
	}

	out, err := fs.uploadRepository.CreateUpload(ctx, up)
	if err != nil {
		if errors.Is(err, uploadDB.ErrDigestAlreadyExists) {
			// a concurrent ingest with the same bytes won the insert;
			// its row is the canonical one
			winner, qerr := fs.uploadRepository.FetchUploadByDigest(ctx, digest)
			if qerr != nil {
				return nil, false, qerr
			}
			if winner == nil {
				return nil, false, err
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	// the DB row is the source of truth; the S3 mirror is best effort
	if err = fs.s3.PutObject(ctx, storageKey, raw, mimeTypeFor(fileName)); err != nil {
		fs.logger.Error("s3 mirror failed", zap.String("storage_key", storageKey), zap.Error(err))
	}

	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindUploadCreated,
		UserID:  fmt.Sprintf("%d", ownerID),
		Payload: uploadDTO.ToResponseUpload(*out),
	}

	fs.mCounter.WithLabelValues("uploads_created_total").Inc()

	return out, true, nil
}

func (fs *FileStoreService) Retrieve(ctx context.Context, id domain.ID) (*domain.Upload, error) {
	up, err := fs.uploadRepository.FetchUploadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, ErrUploadNotFound
	}

	// a fresh presigned link beats the static one when we can mint it
	if url, perr := fs.s3.PresignGetURL(ctx, up.StorageKey); perr == nil {
		up.DownloadURL = url
	}

	return up, nil
}

func (fs *FileStoreService) AttachAnalysis(ctx context.Context, id domain.ID, result string, doesMatch *bool) (*domain.Upload, error) {
	up, err := fs.uploadRepository.UpdateAnalysis(ctx, id, result, doesMatch)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, ErrUploadNotFound
	}

	return up, nil
}

func (fs *FileStoreService) Delete(ctx context.Context, id domain.ID) error {
	up, err := fs.uploadRepository.DeleteUpload(ctx, id)
	if err != nil {
		return err
	}
	if up == nil {
		return ErrUploadNotFound
	}

	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindUploadDeleted,
		UserID:  fmt.Sprintf("%d", up.OwnerID),
		Payload: uploadDTO.ToResponseUpload(*up),
	}

	fs.mCounter.WithLabelValues("uploads_deleted_total").Inc()

	return nil
}

func (fs *FileStoreService) ListByOwner(ctx context.Context, ownerID user.ID) (domain.Uploads, error) {
	ups, err := fs.uploadRepository.FetchUploadsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if ups == nil {
		ups = domain.Uploads{}
	}

	return ups, nil
}

// genStorageKey: "uploads/YYYY/MM/DD/<digest>/<filename>"
func genStorageKey(digest, fileName string) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"uploads/%04d/%02d/%02d/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		digest,
		fileName,
	)
}

func mimeTypeFor(fileName string) string {
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); mt != "" {
		return mt
	}
	// the upload flow only deals in chart images
	return "image/png"
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	//  [a-z0-9], '-' и '_', dot/space → '-'
	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
