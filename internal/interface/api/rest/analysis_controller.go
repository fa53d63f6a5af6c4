package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/application/services"
	uploadDomain "chart-insight-api/internal/domain/upload"
	uploadDTO "chart-insight-api/internal/interface/api/rest/dto/upload"
	"chart-insight-api/internal/interface/api/rest/middleware"
	"chart-insight-api/internal/interface/api/rest/validator"
)

type AnalysisController struct {
	analysisService ports.AnalysisService
	logger          *zap.Logger
}

func NewAnalysisController(
	r *gin.Engine,
	analysisService ports.AnalysisService,
	logger *zap.Logger,
	authService ports.Auth,
) *AnalysisController {
	ac := &AnalysisController{
		analysisService: analysisService,
		logger:          logger,
	}

	r.POST(RouteUploadAnalyze, middleware.AuthMiddleware(authService), ac.AnalyzeHandler)
	r.POST(RouteUploadValidateDescrip, middleware.AuthMiddleware(authService), ac.ValidateDescriptionHandler)

	return ac
}

func (ac *AnalysisController) AnalyzeHandler(c *gin.Context) {
	ok, id := validator.IsID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a positive integer"},
		)
		return
	}

	// body is optional, an empty prompt falls back to the default
	var req uploadDTO.AnalyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
	}

	up, err := ac.analysisService.AnalyzeUpload(c.Request.Context(), uploadDomain.ID(id), req.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
			return
		}
		c.JSON(
			http.StatusBadGateway,
			gin.H{"error": "failed to analyze upload"},
		)
		ac.logger.Error("AnalyzeUpload() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, uploadDTO.ToResponseUpload(*up))
}

func (ac *AnalysisController) ValidateDescriptionHandler(c *gin.Context) {
	ok, id := validator.IsID(c.Param("upload_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "upload_id must be a positive integer"},
		)
		return
	}

	var req uploadDTO.ValidateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	up, err := ac.analysisService.ValidateDescription(c.Request.Context(), uploadDomain.ID(id), req.Description, req.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
			return
		}
		c.JSON(
			http.StatusBadGateway,
			gin.H{"error": "failed to validate description"},
		)
		ac.logger.Error("ValidateDescription() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, uploadDTO.ToResponseUpload(*up))
}
