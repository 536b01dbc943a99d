package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/veen-app/veen-api/internal/dto"
	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/repository"
	"github.com/veen-app/veen-api/internal/resume"
	"github.com/veen-app/veen-api/internal/service"
)

// PDFGenerator is the part of service.PDFService the resume flows use.
type PDFGenerator interface {
	GenerateResumePDF(ctx context.Context, doc model.ResumeDocument) ([]byte, error)
	GenerateTextOnlyPDF(ctx context.Context, text string) ([]byte, error)
	FileName(name, suffix string) string
}

var _ PDFGenerator = (*service.PDFService)(nil)

type ResumeUsecase struct {
	store    repository.ResumeStore
	pdf      PDFGenerator
	validate *validator.Validate
}

func NewResumeUsecase(store repository.ResumeStore, pdf PDFGenerator) *ResumeUsecase {
	return &ResumeUsecase{store: store, pdf: pdf, validate: newValidator()}
}

// PDFFile is a rendered resume ready to stream.
type PDFFile struct {
	FileName string
	Content  []byte
}

type ApproveResult struct {
	ID  string
	PDF *PDFFile
}

// CreateDraft saves a builder draft and returns its id.
func (uc *ResumeUsecase) CreateDraft(ctx context.Context, doc *model.ResumeDocument) (string, error) {
	if doc == nil || strings.TrimSpace(doc.Name) == "" {
		return "", &ValidationError{Message: "Missing resume data.", Fields: map[string]string{"resumeData.name": "required"}}
	}
	draft := *doc
	draft.AssignIDs()

	stored := &model.StoredResume{Document: &draft}
	if err := uc.store.Create(ctx, stored); err != nil {
		return "", fmt.Errorf("save resume draft: %w", err)
	}
	log.Printf("Resume created and saved: %s", stored.ID)
	return stored.ID.String(), nil
}

func (uc *ResumeUsecase) Get(ctx context.Context, id string) (*model.StoredResume, error) {
	return uc.store.FindByID(ctx, id)
}

// SaveUpload keeps only the extracted text of an uploaded file.
func (uc *ResumeUsecase) SaveUpload(ctx context.Context, filename, rawContent string) (string, error) {
	stored := &model.StoredResume{Filename: filename, RawContent: rawContent}
	if err := uc.store.Create(ctx, stored); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return stored.ID.String(), nil
}

// Approve merges the reviewed AI output over the original resume, stores the
// result and, on paid plans, renders it to PDF.
func (uc *ResumeUsecase) Approve(ctx context.Context, req dto.ApproveRequest) (*ApproveResult, error) {
	if err := uc.validate.Struct(req); err != nil || isJSONNull(req.TailoredData) {
		return nil, &ValidationError{Message: "Missing tailored data or user plan."}
	}
	plan, ok := model.ParsePlan(req.UserPlan)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("Unknown plan: %s", req.UserPlan), Fields: map[string]string{"userPlan": "oneof"}}
	}

	var original model.ResumeDocument
	if req.OriginalData != nil {
		original = *req.OriginalData
	}
	merged := resume.Merge(req.TailoredData, original)

	stored := &model.StoredResume{Document: &merged, Approved: true}
	if err := uc.store.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("save approved resume: %w", err)
	}
	result := &ApproveResult{ID: stored.ID.String()}

	if !plan.AllowsPDFExport() {
		return result, nil
	}

	// The approved resume stays saved when rendering fails; the error carries
	// its id so the client can export it again later.
	content, err := uc.pdf.GenerateResumePDF(ctx, merged)
	if err != nil {
		log.Printf("Approved resume %s saved but PDF rendering failed: %v", result.ID, err)
		return nil, fmt.Errorf("approved resume %s saved, PDF rendering failed: %w", result.ID, err)
	}
	result.PDF = &PDFFile{FileName: uc.pdf.FileName(nameOr(merged.Name, "resume"), "-tailored"), Content: content}
	return result, nil
}

// Export renders either structured resume data or plain text to PDF.
func (uc *ResumeUsecase) Export(ctx context.Context, req dto.ExportRequest) (*PDFFile, error) {
	if req.ResumeData == nil && strings.TrimSpace(req.ResumeText) == "" {
		return nil, &ValidationError{Message: "Missing resume data or text for export."}
	}
	if req.UserPlan != "" {
		plan, ok := model.ParsePlan(req.UserPlan)
		if !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("Unknown plan: %s", req.UserPlan), Fields: map[string]string{"userPlan": "oneof"}}
		}
		if !plan.AllowsPDFExport() {
			return nil, &PlanRestrictionError{Plan: plan, Feature: "PDF export"}
		}
	}

	var name string
	if req.ResumeData != nil {
		name = req.ResumeData.Name
	}
	fileName := uc.pdf.FileName(name, "")

	var (
		content []byte
		err     error
	)
	if strings.TrimSpace(req.ResumeText) != "" {
		content, err = uc.pdf.GenerateTextOnlyPDF(ctx, req.ResumeText)
	} else {
		content, err = uc.pdf.GenerateResumePDF(ctx, *req.ResumeData)
	}
	if err != nil {
		return nil, err
	}
	return &PDFFile{FileName: fileName, Content: content}, nil
}

func isJSONNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
