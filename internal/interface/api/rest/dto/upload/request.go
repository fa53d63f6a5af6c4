package upload

type (
	AnalyzeRequest struct {
		Prompt string `json:"prompt,omitempty"`
	}
	ValidateDescriptionRequest struct {
		Description string `json:"description"`
		Prompt      string `json:"prompt,omitempty"`
	}
)
