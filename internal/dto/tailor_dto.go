package dto

import "github.com/veen-app/veen-api/internal/model"

type TailorRequest struct {
	ResumeText     string `json:"resumeText" validate:"required,notblank"`
	JobDescription string `json:"jobDescription" validate:"required,notblank"`
	ModelProvider  string `json:"modelProvider" validate:"required,notblank"`
	UserPlan       string `json:"userPlan" validate:"required,notblank"`
	ResumeID       string `json:"resumeId,omitempty" validate:"omitempty,uuid"`
}

type TailorResponse struct {
	Provider          string                `json:"provider"`
	TailoredJSON      *model.ResumeDocument `json:"tailoredJson"`
	TailoredPlainText string                `json:"tailoredPlainText"`
}

type SummarizeRequest struct {
	Name         string `json:"name" validate:"required,notblank"`
	Title        string `json:"title" validate:"required,notblank"`
	SummaryDraft string `json:"summaryDraft" validate:"required,notblank"`
	UserPlan     string `json:"userPlan"`
}
