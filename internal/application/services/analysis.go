package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"chart-insight-api/internal/application/ports"
	domain "chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/infrastructure/mq"
	uploadDTO "chart-insight-api/internal/interface/api/rest/dto/upload"
)

const (
	DefaultInsightPrompt = "Analyze this graph and provide insights as you would be the best Data Analyst in the world! " +
		"Keep in mind that uploaded image might not be graph image in that case just answer " +
		"'The provided image does not show any graph data'."

	DefaultValidatePrompt = "Tell me if provided description match with graph shown in image. " +
		"If description does not match graph shown in image inform me about it, " +
		"and provide me with description what is really shown in image. " +
		"Keep in mind that in description might be some giberish words such as 'BBB' or something like that, " +
		"ignore them and if after ignoring them description still does not match graph shown in image just say " +
		"'The description provided does not match and image' and also provide me with proper description. " +
		"Keep in mind that uploaded image might not be graph image in that case just answer " +
		"'The provided image does not show any graph data'."
)

type AnalysisOpsService struct {
	fileStore ports.FileStore
	vision    ports.VisionClient
	mq        ports.RabbitMQ
	mCounter  *prometheus.CounterVec
}

func NewAnalysisService(
	fileStore ports.FileStore,
	vision ports.VisionClient,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AnalysisService {
	return &AnalysisOpsService{
		fileStore: fileStore,
		vision:    vision,
		mq:        mqc,
		mCounter:  mCounter,
	}
}

func (as *AnalysisOpsService) AnalyzeUpload(ctx context.Context, id domain.ID, prompt string) (*domain.Upload, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultInsightPrompt
	}

	up, err := as.fileStore.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := as.vision.AnalyzeImage(ctx, up.Content, prompt, mimeTypeFor(up.FileName))
	if err != nil {
		return nil, err
	}

	// a plain insight run never sets the match flag
	out, err := as.fileStore.AttachAnalysis(ctx, id, result, nil)
	if err != nil {
		return nil, err
	}

	as.publishCompleted(out)
	as.mCounter.WithLabelValues("analyses_completed_total").Inc()

	return out, nil
}

func (as *AnalysisOpsService) ValidateDescription(ctx context.Context, id domain.ID, description, prompt string) (*domain.Upload, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultValidatePrompt
	}

	up, err := as.fileStore.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	fullPrompt := fmt.Sprintf("%s\n\nDescription: %s", prompt, description)
	result, err := as.vision.AnalyzeImage(ctx, up.Content, fullPrompt, mimeTypeFor(up.FileName))
	if err != nil {
		return nil, err
	}

	doesMatch := strings.Contains(result, "True")

	out, err := as.fileStore.AttachAnalysis(ctx, id, result, &doesMatch)
	if err != nil {
		return nil, err
	}

	as.publishCompleted(out)
	as.mCounter.WithLabelValues("analyses_completed_total").Inc()

	return out, nil
}

func (as *AnalysisOpsService) publishCompleted(up *domain.Upload) {
	as.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindAnalysisCompleted,
		UserID:  fmt.Sprintf("%d", up.OwnerID),
		Payload: uploadDTO.ToResponseUpload(*up),
	}
}
