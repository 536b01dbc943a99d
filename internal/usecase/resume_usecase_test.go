package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veen-app/veen-api/internal/dto"
	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/repository"
)

func newResumeUsecase() (*ResumeUsecase, *repository.MemoryResumeRepository, *fakePDF) {
	store := repository.NewMemoryResumeRepository()
	pdf := &fakePDF{}
	return NewResumeUsecase(store, pdf), store, pdf
}

func TestCreateDraft(t *testing.T) {
	uc, store, _ := newResumeUsecase()
	doc := &model.ResumeDocument{
		Name:       "Jane Doe",
		Experience: []model.ExperienceEntry{{Title: "Engineer"}, {Title: "Intern"}},
	}

	id, err := uc.CreateDraft(context.Background(), doc)

	require.NoError(t, err)
	stored, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.Document.Name)
	assert.Equal(t, 1, stored.Document.Experience[0].ID)
	assert.Equal(t, 2, stored.Document.Experience[1].ID)
	assert.False(t, stored.Approved)
}

func TestCreateDraft_RequiresName(t *testing.T) {
	uc, _, _ := newResumeUsecase()

	_, err := uc.CreateDraft(context.Background(), &model.ResumeDocument{Title: "Engineer"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.CreateDraft(context.Background(), nil)
	assert.ErrorAs(t, err, &validationErr)
}

func TestGet_NotFound(t *testing.T) {
	uc, _, _ := newResumeUsecase()

	_, err := uc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrResumeNotFound)
}

func TestSaveUpload(t *testing.T) {
	uc, _, _ := newResumeUsecase()

	id, err := uc.SaveUpload(context.Background(), "cv.pdf", "Jane Doe\nEngineer")
	require.NoError(t, err)

	stored, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", stored.Filename)
	assert.Equal(t, "Jane Doe\nEngineer", stored.RawContent)
	assert.Nil(t, stored.Document)
}

func TestApprove_PaidPlanRendersPDF(t *testing.T) {
	uc, store, pdf := newResumeUsecase()
	req := dto.ApproveRequest{
		OriginalData: &model.ResumeDocument{Name: "Jane Doe", Email: "jane@example.com", Skills: []string{"Go"}},
		TailoredData: json.RawMessage(`{"summary": "Tailored summary", "skills": ["Go", "Kafka"]}`),
		UserPlan:     "Pro",
	}

	result, err := uc.Approve(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, result.PDF)
	assert.Equal(t, "Jane Doe-tailored.pdf", result.PDF.FileName)
	assert.Equal(t, []byte("%PDF-resume"), result.PDF.Content)
	assert.Equal(t, "Tailored summary", pdf.lastDoc.Summary)
	assert.Equal(t, "jane@example.com", pdf.lastDoc.Email)

	stored, err := store.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.True(t, stored.Approved)
	assert.Equal(t, []string{"Go", "Kafka"}, stored.Document.Skills)
}

func TestApprove_FreePlanSavesWithoutPDF(t *testing.T) {
	uc, _, pdf := newResumeUsecase()

	result, err := uc.Approve(context.Background(), dto.ApproveRequest{
		TailoredData: json.RawMessage(`{"name": "Sam"}`),
		UserPlan:     "free",
	})

	require.NoError(t, err)
	assert.Nil(t, result.PDF)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 0, pdf.resumeCalls)
}

func TestApprove_Validation(t *testing.T) {
	uc, _, _ := newResumeUsecase()
	var validationErr *ValidationError

	_, err := uc.Approve(context.Background(), dto.ApproveRequest{UserPlan: "Pro"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.Approve(context.Background(), dto.ApproveRequest{TailoredData: json.RawMessage(`null`), UserPlan: "Pro"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.Approve(context.Background(), dto.ApproveRequest{TailoredData: json.RawMessage(`{}`), UserPlan: "Gold"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestExport_Text(t *testing.T) {
	uc, _, pdf := newResumeUsecase()

	file, err := uc.Export(context.Background(), dto.ExportRequest{
		ResumeData: &model.ResumeDocument{Name: "Jane Doe"},
		ResumeText: "Jane Doe\nEngineer",
		UserPlan:   "Ultimate",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe.pdf", file.FileName)
	assert.Equal(t, []byte("%PDF-text"), file.Content)
	assert.Equal(t, 1, pdf.textCalls)
	assert.Equal(t, 0, pdf.resumeCalls)
}

func TestExport_Structured(t *testing.T) {
	uc, _, pdf := newResumeUsecase()

	file, err := uc.Export(context.Background(), dto.ExportRequest{
		ResumeData: &model.ResumeDocument{Name: "Jane Doe", Skills: []string{"Go"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-resume"), file.Content)
	assert.Equal(t, []string{"Go"}, pdf.lastDoc.Skills)
}

func TestExport_Rejections(t *testing.T) {
	uc, _, pdf := newResumeUsecase()

	_, err := uc.Export(context.Background(), dto.ExportRequest{UserPlan: "Pro"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = uc.Export(context.Background(), dto.ExportRequest{ResumeText: "text", UserPlan: "Free"})
	var planErr *PlanRestrictionError
	assert.ErrorAs(t, err, &planErr)

	assert.Equal(t, 0, pdf.textCalls+pdf.resumeCalls)
}

func TestExport_RendererFailure(t *testing.T) {
	uc, _, pdf := newResumeUsecase()
	pdf.err = errors.New("chrome crashed")

	_, err := uc.Export(context.Background(), dto.ExportRequest{ResumeText: "text"})

	assert.EqualError(t, err, "chrome crashed")
}

func TestApprove_RenderFailureKeepsSavedResume(t *testing.T) {
	uc, store, pdf := newResumeUsecase()
	pdf.err = errors.New("chrome crashed")

	_, err := uc.Approve(context.Background(), dto.ApproveRequest{
		OriginalData: &model.ResumeDocument{Name: "Jane Doe"},
		TailoredData: json.RawMessage(`{"summary": "Tailored"}`),
		UserPlan:     "Pro",
	})

	require.Error(t, err)
	assert.ErrorContains(t, err, "chrome crashed")

	var id string
	_, scanErr := fmt.Sscanf(err.Error(), "approved resume %s saved,", &id)
	require.NoError(t, scanErr)
	stored, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.Approved)
	assert.Equal(t, "Tailored", stored.Document.Summary)
}
