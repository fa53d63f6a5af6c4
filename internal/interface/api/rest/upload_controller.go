package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/application/services"
	uploadDomain "chart-insight-api/internal/domain/upload"
	userDomain "chart-insight-api/internal/domain/user"
	uploadDTO "chart-insight-api/internal/interface/api/rest/dto/upload"
	"chart-insight-api/internal/interface/api/rest/middleware"
	"chart-insight-api/internal/interface/api/rest/validator"
)

// 10MB
const maxSize = int64(10 << 20)

type UploadController struct {
	fileStore ports.FileStore
	logger    *zap.Logger
}

func NewUploadController(
	r *gin.Engine,
	fileStore ports.FileStore,
	logger *zap.Logger,
	authService ports.Auth,
) *UploadController {
	upc := &UploadController{
		fileStore: fileStore,
		logger:    logger,
	}

	r.POST(RouteUploads, middleware.AuthMiddleware(authService), upc.CreateUploadHandler)
	r.GET(RouteUpload, middleware.AuthMiddleware(authService), upc.GetUploadHandler)
	r.DELETE(RouteUpload, middleware.AuthMiddleware(authService), upc.DeleteUploadHandler)
	r.GET(RouteUserUploads, middleware.AuthMiddleware(authService), upc.GetUserUploadsHandler)

	return upc
}

func (upc *UploadController) CreateUploadHandler(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.MsgCouldNotValidate})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to read file"},
		)
		upc.logger.Error("FormFile Open() error", zap.Error(err))
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxSize))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to read file"},
		)
		upc.logger.Error("FormFile ReadAll() error", zap.Error(err))
		return
	}

	var annotation *string
	if v, exists := c.GetPostForm("annotation"); exists {
		annotation = &v
	}

	up, created, err := upc.fileStore.Ingest(c.Request.Context(), ownerID, raw, fh.Filename, annotation)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if errors.Is(err, services.ErrEmptyUpload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to store upload"},
		)
		upc.logger.Error("Ingest() error", zap.Error(err))
		return
	}

	// a duplicate image resolves to the already stored row
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, uploadDTO.ToResponseUpload(*up))
}

func (upc *UploadController) GetUploadHandler(c *gin.Context) {
	ok, id := validator.IsID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a positive integer"},
		)
		return
	}

	up, err := upc.fileStore.Retrieve(c.Request.Context(), uploadDomain.ID(id))
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get upload"},
		)
		upc.logger.Error("Retrieve() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, uploadDTO.ToResponseUpload(*up))
}

func (upc *UploadController) DeleteUploadHandler(c *gin.Context) {
	ok, id := validator.IsID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a positive integer"},
		)
		return
	}

	if err := upc.fileStore.Delete(c.Request.Context(), uploadDomain.ID(id)); err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete upload"},
		)
		upc.logger.Error("Delete() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (upc *UploadController) GetUserUploadsHandler(c *gin.Context) {
	ok, id := validator.IsID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a positive integer"},
		)
		return
	}

	uploads, err := upc.fileStore.ListByOwner(c.Request.Context(), userDomain.ID(id))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get uploads"},
		)
		upc.logger.Error("ListByOwner() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, uploadDTO.ResponseData{
		Data: uploadDTO.ToResponseUploads(uploads),
	})
}
