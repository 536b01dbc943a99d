package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/veen-app/veen-api/internal/config"
	"github.com/veen-app/veen-api/internal/dto"
	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/service"
	"github.com/veen-app/veen-api/internal/usecase"
	"github.com/veen-app/veen-api/internal/util"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume file to a job description",
	Long:  "Extracts the text of a PDF, DOCX or TXT resume (or reads a JSON resume), tailors it to the job description and writes the plain text result. With --json the merged structured resume is written instead.",
	RunE:  runTailor,
}

var (
	tailorResumeFile string
	tailorJobFile    string
	tailorProvider   string
	tailorPlan       string
	tailorOutputFile string
	tailorJSON       bool
)

// providersFor builds the vendor clients. Tests replace it.
var providersFor = func(ctx context.Context) map[model.Provider]service.LLMProvider {
	return service.ConfiguredProviders(ctx, config.LoadGeminiConfig(), config.LoadOpenAIConfig())
}

func init() {
	tailorCmd.Flags().StringVarP(&tailorResumeFile, "resume", "r", "", "Path to resume file: .pdf, .docx, .txt or .json (required)")
	tailorCmd.Flags().StringVarP(&tailorJobFile, "job", "j", "", "Path to job description text file (required)")
	tailorCmd.Flags().StringVarP(&tailorProvider, "provider", "p", string(model.ProviderGemini), "AI provider: gemini or openai")
	tailorCmd.Flags().StringVar(&tailorPlan, "plan", string(model.PlanFree), "Subscription plan: free, pro or ultimate")
	tailorCmd.Flags().StringVarP(&tailorOutputFile, "out", "o", "", "Output file (defaults to stdout)")
	tailorCmd.Flags().BoolVar(&tailorJSON, "json", false, "Write the structured resume as JSON")

	if err := tailorCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := tailorCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resumeText, err := readResume(tailorResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	job, err := os.ReadFile(tailorJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	uc := usecase.NewTailorUsecase(providersFor(ctx), service.DefaultRetryPolicy(), nil)
	result, err := uc.Tailor(ctx, dto.TailorRequest{
		ResumeText:     resumeText,
		JobDescription: string(job),
		ModelProvider:  tailorProvider,
		UserPlan:       tailorPlan,
	})
	if err != nil {
		return err
	}

	output := []byte(result.PlainText)
	if tailorJSON {
		output, err = json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resume: %w", err)
		}
	}

	if tailorOutputFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return err
	}
	if dir := filepath.Dir(tailorOutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(tailorOutputFile, output, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Tailored with %s, written to %s\n", result.Provider.DisplayName(), tailorOutputFile)
	return nil
}

// readResume passes JSON resumes through untouched so their fields are kept
// as the merge base.
func readResume(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		raw, err := os.ReadFile(path)
		return string(raw), err
	}
	return util.ExtractText(path, ext)
}
