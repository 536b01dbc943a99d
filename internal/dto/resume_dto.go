package dto

import (
	"encoding/json"

	"github.com/veen-app/veen-api/internal/model"
)

type CreateResumeRequest struct {
	ResumeData *model.ResumeDocument `json:"resumeData"`
}

// ApproveRequest carries the AI output as raw JSON so the merger can read
// whichever key variants the vendor used.
type ApproveRequest struct {
	OriginalData *model.ResumeDocument `json:"originalData,omitempty"`
	TailoredData json.RawMessage       `json:"tailoredData" validate:"required"`
	UserPlan     string                `json:"userPlan" validate:"required,notblank"`
}

type ExportRequest struct {
	ResumeData *model.ResumeDocument `json:"resumeData,omitempty"`
	ResumeText string                `json:"resumeText,omitempty"`
	UserPlan   string                `json:"userPlan"`
}

type UploadResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	RawContent string `json:"rawContent"`
}
