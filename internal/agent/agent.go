// Package agent implements the LLM-backed resume agents: structured
// extraction from raw resume text, and resume-to-job-description analysis.
// Provider adapters classify their API errors into apierr sentinels and run
// every remote call through apierr.Do.
package agent

import (
	"context"

	"github.com/phadkeamruta/jobalign-ai/internal/resume"
)

// Parser extracts structured fields from raw resume text.
type Parser interface {
	// Parse returns the structured resume extracted from resumeText.
	Parse(ctx context.Context, resumeText string) (resume.Resume, error)
}

// Analyzer compares a resume against a job description and produces a
// markdown optimization report (match percentage, missing keywords, weak
// areas, rewritten bullets, tailored resume).
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, resumeText string) (string, error)
}

// Token estimation: conservative at ~3 chars/token (English averages ~4).
const defaultCharsPerToken = 3

// estimateTokens estimates the number of tokens in a text.
// Uses len/3 to err on the side of caution against API context limits.
func estimateTokens(text string) int {
	return len(text) / defaultCharsPerToken
}
