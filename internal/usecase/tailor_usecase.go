package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"github.com/veen-app/veen-api/internal/dto"
	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/repository"
	"github.com/veen-app/veen-api/internal/resume"
	"github.com/veen-app/veen-api/internal/service"
	"github.com/veen-app/veen-api/internal/util"
	"github.com/xeipuuv/gojsonschema"
)

// TailorResult is held only for the review step; it is never stored.
type TailorResult struct {
	Provider  model.Provider
	RawJSON   json.RawMessage
	Document  model.ResumeDocument
	PlainText string
}

type TailorUsecase struct {
	providers map[model.Provider]service.LLMProvider
	retry     service.RetryPolicy
	store     repository.ResumeStore
	validate  *validator.Validate
	schema    *gojsonschema.Schema
}

// NewTailorUsecase takes the configured providers only; a vendor without a
// credential must not appear in the map.
func NewTailorUsecase(providers map[model.Provider]service.LLMProvider, retry service.RetryPolicy, store repository.ResumeStore) *TailorUsecase {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(`{"type": "object"}`))
	if err != nil {
		panic(fmt.Sprintf("compile response schema: %v", err))
	}
	configured := make(map[model.Provider]service.LLMProvider, len(providers))
	for name, p := range providers {
		if p != nil {
			configured[name] = p
		}
	}
	return &TailorUsecase{
		providers: configured,
		retry:     retry,
		store:     store,
		validate:  newValidator(),
		schema:    schema,
	}
}

// Tailor rewrites the resume against the job description. Every check that
// can reject the request runs before the vendor is contacted.
func (uc *TailorUsecase) Tailor(ctx context.Context, req dto.TailorRequest) (*TailorResult, error) {
	if err := uc.validateStruct(req, "Missing content, description, AI provider, or user plan."); err != nil {
		return nil, err
	}

	provider, ok := model.ParseProvider(req.ModelProvider)
	if !ok {
		return nil, &UnsupportedProviderError{Provider: req.ModelProvider}
	}
	plan, ok := model.ParsePlan(req.UserPlan)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("Unknown plan: %s", req.UserPlan), Fields: map[string]string{"userPlan": "oneof"}}
	}
	if !plan.AllowsProvider(provider) {
		return nil, &PlanRestrictionError{Plan: plan, Feature: provider.DisplayName() + " tailoring"}
	}

	original, err := uc.originalDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	chosen, client, err := uc.resolveProvider(provider, plan)
	if err != nil {
		return nil, err
	}

	log.Printf("Starting AI tailoring using %s for plan %s", chosen, plan)
	raw, err := uc.generate(ctx, client, tailorSystemInstruction, buildTailorPrompt(req.ResumeText, req.JobDescription))
	if err != nil {
		return nil, err
	}

	merged := resume.Merge(raw, original)
	return &TailorResult{
		Provider:  chosen,
		RawJSON:   raw,
		Document:  merged,
		PlainText: resume.FormatPlainText(merged),
	}, nil
}

// Summarize writes a short professional summary. It always asks gemini,
// which every plan may use.
func (uc *TailorUsecase) Summarize(ctx context.Context, req dto.SummarizeRequest) (string, error) {
	if err := uc.validateStruct(req, "Missing essential data for summarization."); err != nil {
		return "", err
	}
	plan := model.PlanFree
	if req.UserPlan != "" {
		parsed, ok := model.ParsePlan(req.UserPlan)
		if !ok {
			return "", &ValidationError{Message: fmt.Sprintf("Unknown plan: %s", req.UserPlan), Fields: map[string]string{"userPlan": "oneof"}}
		}
		plan = parsed
	}

	_, client, err := uc.resolveProvider(model.ProviderGemini, plan)
	if err != nil {
		return "", err
	}

	raw, err := uc.generate(ctx, client, summarySystemInstruction, buildSummaryPrompt(req.Name, req.Title, req.SummaryDraft))
	if err != nil {
		return "", err
	}

	for _, key := range []string{"summary", "professional_summary"} {
		if s := strings.TrimSpace(gjson.GetBytes(raw, key).String()); s != "" {
			return s, nil
		}
	}
	return string(raw), nil
}

// resolveProvider returns the requested vendor when it has a credential,
// otherwise the alternate vendor when the plan permits it.
func (uc *TailorUsecase) resolveProvider(requested model.Provider, plan model.Plan) (model.Provider, service.LLMProvider, error) {
	if client, ok := uc.providers[requested]; ok {
		return requested, client, nil
	}

	alternate := requested.Alternate()
	if client, ok := uc.providers[alternate]; ok && plan.AllowsProvider(alternate) {
		log.Printf("%s API key not configured, falling back to %s", requested.DisplayName(), alternate.DisplayName())
		return alternate, client, nil
	}

	if len(uc.providers) == 0 {
		return "", nil, &ConfigurationError{Message: "No AI API key is configured."}
	}
	return "", nil, &ConfigurationError{Message: fmt.Sprintf("%s API key is not configured.", requested.DisplayName())}
}

func (uc *TailorUsecase) generate(ctx context.Context, client service.LLMProvider, system, prompt string) (json.RawMessage, error) {
	text, err := service.Retry(ctx, uc.retry, client.Name(), func(ctx context.Context) (string, error) {
		return client.GenerateJSON(ctx, system, prompt)
	})
	if err != nil {
		return nil, &ProviderError{Provider: client.Name(), Err: err}
	}

	cleaned := util.CleanJSON(text)
	result, err := uc.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, &ProviderError{Provider: client.Name(), Err: fmt.Errorf("response is not valid JSON: %w", err)}
	}
	if !result.Valid() {
		return nil, &ProviderError{Provider: client.Name(), Err: errors.New("response is not a JSON object")}
	}
	return json.RawMessage(cleaned), nil
}

// originalDocument is the resume the AI output is merged onto: the stored
// resume when an id is given, else the request text when it is a JSON
// resume, else an empty document.
func (uc *TailorUsecase) originalDocument(ctx context.Context, req dto.TailorRequest) (model.ResumeDocument, error) {
	if req.ResumeID != "" && uc.store != nil {
		stored, err := uc.store.FindByID(ctx, req.ResumeID)
		if err != nil {
			return model.ResumeDocument{}, err
		}
		if stored.Document != nil {
			return *stored.Document, nil
		}
	}

	trimmed := strings.TrimSpace(req.ResumeText)
	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		return resume.FromJSON([]byte(trimmed)), nil
	}
	return model.ResumeDocument{}, nil
}

func (uc *TailorUsecase) validateStruct(s any, message string) error {
	err := uc.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: message}
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[jsonFieldName(fe.Field())] = fe.Tag()
	}
	return &ValidationError{Message: message, Fields: fields}
}

// jsonFieldName lower-cases the first letter so field names match the
// request body keys.
func jsonFieldName(field string) string {
	switch field {
	case "ResumeID":
		return "resumeId"
	case "":
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
