package usecase

import "fmt"

const tailorSystemInstruction = "You are a professional resume tailoring specialist. Your task is to rewrite the provided resume content to maximize its relevance and keyword density for the target job description. Focus on quantifiable achievements and use ATS-friendly formatting. DO NOT invent experience; only rephrase existing points."

const summarySystemInstruction = "You are a professional resume writer. Answer with a single JSON object of the form {\"summary\": \"...\"}."

func buildTailorPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Existing Resume Content (JSON or plain text):
---
%s
---

Target Job Description:
---
%s
---

Please rewrite and optimize the Summary, Experience descriptions, and Skills section to perfectly match the job description's requirements. Maintain the structure and only output the result as a single JSON object.`, resumeText, jobDescription)
}

func buildSummaryPrompt(name, title, draft string) string {
	return fmt.Sprintf(`Based on the following details, write a highly professional, 3-sentence summary.
Name: %s, Title: %s. Draft Notes: %s`, name, title, draft)
}
