package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/application/services"
	uploadDomain "chart-insight-api/internal/domain/upload"
	uploadDTO "chart-insight-api/internal/interface/api/rest/dto/upload"
	"chart-insight-api/internal/interface/api/rest/middleware"
)

type FakeAnalysisService struct {
	AnalyzeUploadFunc       func(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error)
	ValidateDescriptionFunc func(ctx context.Context, id uploadDomain.ID, description, prompt string) (*uploadDomain.Upload, error)
}

func (f *FakeAnalysisService) AnalyzeUpload(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error) {
	if f.AnalyzeUploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.AnalyzeUploadFunc(ctx, id, prompt)
}

func (f *FakeAnalysisService) ValidateDescription(ctx context.Context, id uploadDomain.ID, description, prompt string) (*uploadDomain.Upload, error) {
	if f.ValidateDescriptionFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ValidateDescriptionFunc(ctx, id, description, prompt)
}

func newAnalysisRouter(t *testing.T, as ports.AnalysisService, auth ports.Auth) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	ac := &AnalysisController{
		analysisService: as,
		logger:          zap.NewNop(),
	}

	r.POST(RouteUploadAnalyze, middleware.AuthMiddleware(auth), ac.AnalyzeHandler)
	r.POST(RouteUploadValidateDescrip, middleware.AuthMiddleware(auth), ac.ValidateDescriptionHandler)

	return r
}

func analyzedUpload(result string, match *bool) *uploadDomain.Upload {
	up := someUpload(9)
	up.AnalysisResult = &result
	up.DoesMatch = match
	return up
}

func TestAnalysisController_AnalyzeHandler(t *testing.T) {
	caller := someDomainUser()

	t.Run("401 without token", func(t *testing.T) {
		r := newAnalysisRouter(t, &FakeAnalysisService{}, &FakeAuth{})
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/analyze", nil, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("400 invalid id", func(t *testing.T) {
		r := newAnalysisRouter(t, &FakeAnalysisService{}, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/abc/analyze", nil, bearer())
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("404 unknown upload", func(t *testing.T) {
		svc := &FakeAnalysisService{
			AnalyzeUploadFunc: func(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error) {
				return nil, services.ErrUploadNotFound
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/analyze", nil, bearer())
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("502 vision failure", func(t *testing.T) {
		svc := &FakeAnalysisService{
			AnalyzeUploadFunc: func(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error) {
				return nil, errors.New("model overloaded")
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/analyze", nil, bearer())
		require.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("200 without body uses empty prompt", func(t *testing.T) {
		svc := &FakeAnalysisService{
			AnalyzeUploadFunc: func(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error) {
				assert.Equal(t, uploadDomain.ID(9), id)
				assert.Empty(t, prompt)
				return analyzedUpload("an upward trend", nil), nil
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/analyze", nil, bearer())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "an upward trend", resp["analysis_result"])
		_, hasMatch := resp["does_match"]
		assert.False(t, hasMatch)
	})

	t.Run("200 custom prompt passed through", func(t *testing.T) {
		svc := &FakeAnalysisService{
			AnalyzeUploadFunc: func(ctx context.Context, id uploadDomain.ID, prompt string) (*uploadDomain.Upload, error) {
				assert.Equal(t, "Describe the axes only.", prompt)
				return analyzedUpload("axes described", nil), nil
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/analyze",
			uploadDTO.AnalyzeRequest{Prompt: "Describe the axes only."}, bearer())
		require.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAnalysisController_ValidateDescriptionHandler(t *testing.T) {
	caller := someDomainUser()

	t.Run("400 missing description", func(t *testing.T) {
		r := newAnalysisRouter(t, &FakeAnalysisService{}, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/validate-description",
			uploadDTO.ValidateDescriptionRequest{Description: "   "}, bearer())
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var resp map[string]any
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.Equal(t, "description is required", resp["error"])
	})

	t.Run("404 unknown upload", func(t *testing.T) {
		svc := &FakeAnalysisService{
			ValidateDescriptionFunc: func(ctx context.Context, id uploadDomain.ID, description, prompt string) (*uploadDomain.Upload, error) {
				return nil, services.ErrUploadNotFound
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/validate-description",
			uploadDTO.ValidateDescriptionRequest{Description: "an upward trend"}, bearer())
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("200 match flag in the response", func(t *testing.T) {
		match := true
		svc := &FakeAnalysisService{
			ValidateDescriptionFunc: func(ctx context.Context, id uploadDomain.ID, description, prompt string) (*uploadDomain.Upload, error) {
				assert.Equal(t, uploadDomain.ID(9), id)
				assert.Equal(t, "an upward trend", description)
				return analyzedUpload("True, it matches.", &match), nil
			},
		}
		r := newAnalysisRouter(t, svc, authAs(caller))
		rr := doReq(t, r, http.MethodPost, RouteUploads+"/9/validate-description",
			uploadDTO.ValidateDescriptionRequest{Description: "an upward trend"}, bearer())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["does_match"])
	})
}
