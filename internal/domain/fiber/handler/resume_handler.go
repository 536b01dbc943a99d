package handler

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/veen-app/veen-api/internal/dto"
	"github.com/veen-app/veen-api/internal/middleware"
	"github.com/veen-app/veen-api/internal/repository"
	"github.com/veen-app/veen-api/internal/usecase"
	"github.com/veen-app/veen-api/internal/util"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedUploadExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".txt": true}

type ResumeHandler struct {
	tailor    *usecase.TailorUsecase
	resumes   *usecase.ResumeUsecase
	uploadDir string
}

func NewResumeHandler(tailor *usecase.TailorUsecase, resumes *usecase.ResumeUsecase, uploadDir string) *ResumeHandler {
	return &ResumeHandler{tailor: tailor, resumes: resumes, uploadDir: uploadDir}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.Health)

	r := api.Group("/resume")
	r.Post("/create", h.Create)
	r.Post("/tailor", middleware.RateLimiter(5, 10*time.Second), h.Tailor)
	r.Post("/summarize", middleware.RateLimiter(5, 10*time.Second), h.Summarize)
	r.Post("/upload", h.Upload)
	r.Post("/export", h.Export)
	r.Post("/approve-changes", h.ApproveChanges)
	r.Get("/:id", h.Get)
}

func (h *ResumeHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "Veen Backend Running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "Resume draft", &usecase.ValidationError{Message: "Invalid request body."})
	}

	id, err := h.resumes.CreateDraft(c.UserContext(), req.ResumeData)
	if err != nil {
		return h.fail(c, "Resume draft", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume draft saved successfully.",
		Data:    fiber.Map{"id": id},
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	stored, err := h.resumes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Resume lookup", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    stored,
	})
}

func (h *ResumeHandler) Tailor(c *fiber.Ctx) error {
	var req dto.TailorRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "AI Tailoring", &usecase.ValidationError{Message: "Invalid request body."})
	}

	result, err := h.tailor.Tailor(c.UserContext(), req)
	if err != nil {
		log.Printf("AI Tailoring Failed (%s): %v", req.ModelProvider, err)
		return h.fail(c, "AI Tailoring", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume tailored successfully.",
		Data: dto.TailorResponse{
			Provider:          string(result.Provider),
			TailoredJSON:      &result.Document,
			TailoredPlainText: result.PlainText,
		},
	})
}

func (h *ResumeHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "AI summarization", &usecase.ValidationError{Message: "Invalid request body."})
	}

	summary, err := h.tailor.Summarize(c.UserContext(), req)
	if err != nil {
		log.Printf("Summarization failed: %v", err)
		return h.fail(c, "AI summarization", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Summary generated.",
		Data:    fiber.Map{"summary": summary},
	})
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return h.fail(c, "Upload", &usecase.ValidationError{Message: "No file uploaded."})
	}
	if file.Size > maxUploadSize {
		return h.fail(c, "Upload", &usecase.ValidationError{Message: "resume file size is too large (max 5MB)"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return h.fail(c, "Upload", &usecase.ValidationError{Message: "Only PDF, DOC, DOCX, and TXT files are allowed"})
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return h.fail(c, "Upload", fmt.Errorf("create upload dir: %w", err))
	}
	savePath := filepath.Join(h.uploadDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, savePath); err != nil {
		return h.fail(c, "Upload", fmt.Errorf("cannot save resume file: %w", err))
	}
	defer func() {
		if err := os.Remove(savePath); err != nil && !os.IsNotExist(err) {
			log.Printf("could not delete temp file %s: %v", savePath, err)
			return
		}
		log.Printf("Temp file deleted: %s", savePath)
	}()

	content, err := util.ExtractText(savePath, ext)
	if errors.Is(err, util.ErrUnsupportedFormat) {
		content = strings.TrimSpace(c.FormValue("rawResumeText"))
		if content == "" {
			content = "Unable to parse this file format. Please copy and paste the content."
		}
	} else if err != nil {
		return h.fail(c, "Upload", err)
	}

	id, err := h.resumes.SaveUpload(c.UserContext(), file.Filename, content)
	if err != nil {
		return h.fail(c, "Upload", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume file uploaded and parsed successfully.",
		Data: dto.UploadResponse{
			ID:         id,
			Filename:   file.Filename,
			RawContent: content,
		},
	})
}

func (h *ResumeHandler) Export(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "PDF generation", &usecase.ValidationError{Message: "Invalid request body."})
	}

	file, err := h.resumes.Export(c.UserContext(), req)
	if err != nil {
		log.Printf("PDF generation error: %v", err)
		return h.fail(c, "PDF generation", err)
	}
	return sendPDF(c, file)
}

func (h *ResumeHandler) ApproveChanges(c *fiber.Ctx) error {
	var req dto.ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, "Approve changes", &usecase.ValidationError{Message: "Invalid request body."})
	}

	result, err := h.resumes.Approve(c.UserContext(), req)
	if err != nil {
		log.Printf("Approve changes error: %v", err)
		return h.fail(c, "Approve changes", err)
	}
	if result.PDF != nil {
		c.Set("X-Resume-Id", result.ID)
		return sendPDF(c, result.PDF)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Changes approved and saved.",
		Data:    fiber.Map{"id": result.ID},
	})
}

func sendPDF(c *fiber.Ctx, file *usecase.PDFFile) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	return c.Status(fiber.StatusOK).Send(file.Content)
}

// fail maps use case errors to status codes. The message names the stage
// that failed.
func (h *ResumeHandler) fail(c *fiber.Ctx, stage string, err error) error {
	var (
		validationErr  *usecase.ValidationError
		unsupportedErr *usecase.UnsupportedProviderError
		planErr        *usecase.PlanRestrictionError
		configErr      *usecase.ConfigurationError
		providerErr    *usecase.ProviderError
	)

	switch {
	case errors.As(err, &validationErr):
		var details any
		if len(validationErr.Fields) > 0 {
			details = util.NewFormError(validationErr.Message, validationErr.Fields).Errors
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: validationErr.Message,
			Details: details,
		})
	case errors.As(err, &unsupportedErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s failed: %s", stage, err.Error()),
		})
	case errors.As(err, &planErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("%s failed: %s", stage, err.Error()),
		})
	case errors.Is(err, repository.ErrResumeNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Resume not found.",
		})
	case errors.As(err, &configErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: fmt.Sprintf("%s failed: %s", stage, err.Error()),
		}, err)
	case errors.As(err, &providerErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: fmt.Sprintf("%s failed: %s", stage, err.Error()),
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: fmt.Sprintf("%s failed: %s", stage, err.Error()),
	}, err)
}
