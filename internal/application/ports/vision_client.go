package ports

import "context"

type VisionClient interface {
	AnalyzeImage(ctx context.Context, imageData []byte, prompt, mimeType string) (string, error)
}
