package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments/internal/core/domain"
	"github.com/medconnect/appointments/internal/core/ports"
	"github.com/medconnect/appointments/internal/pkg/metrics"
)

const (
	minSymptomsLength = 5
	minConcernsLength = 10
	maxSpecialties    = 3

	triagePrompt = `Based on the following symptoms, recommend up to 3 relevant medical specialties. ` +
		`Respond ONLY with a valid JSON array of strings, like ["Cardiologist", "Neurologist"]. Symptoms: "%s"`
	summaryPrompt = `Summarize the following patient's concerns into a concise, one-sentence summary for a doctor. ` +
		`Focus on the key symptoms and duration. Patient concerns: "%s"`
)

type AssistantService struct {
	generator ports.TextGenerator
	logger    zerolog.Logger
}

func NewAssistantService(generator ports.TextGenerator, logger zerolog.Logger) *AssistantService {
	return &AssistantService{generator: generator, logger: logger}
}

// RecommendSpecialties asks the provider for up to three specialties matching
// symptoms. An answer that is not a JSON array of strings degrades to
// domain.DefaultSpecialty instead of failing the request.
func (s *AssistantService) RecommendSpecialties(ctx context.Context, symptoms string) ([]string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(symptoms)) < minSymptomsLength {
		return nil, domain.ErrSymptomsTooShort
	}

	text, err := s.generate(ctx, "triage", fmt.Sprintf(triagePrompt, symptoms))
	if err != nil {
		return nil, err
	}

	specialties, ok := parseSpecialties(text)
	if !ok {
		metrics.InferenceRequestsTotal.WithLabelValues("triage", "fallback").Inc()
		s.logger.Warn().Str("response", text).Msg("provider did not return a JSON array, using default specialty")
		return []string{domain.DefaultSpecialty}, nil
	}

	metrics.InferenceRequestsTotal.WithLabelValues("triage", "ok").Inc()
	return specialties, nil
}

// SummarizeConcerns returns the provider's one-sentence summary, trimmed.
func (s *AssistantService) SummarizeConcerns(ctx context.Context, concerns string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(concerns)) < minConcernsLength {
		return "", domain.ErrConcernsTooShort
	}

	text, err := s.generate(ctx, "summary", fmt.Sprintf(summaryPrompt, concerns))
	if err != nil {
		return "", err
	}

	metrics.InferenceRequestsTotal.WithLabelValues("summary", "ok").Inc()
	return strings.TrimSpace(text), nil
}

func (s *AssistantService) generate(ctx context.Context, kind, prompt string) (string, error) {
	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	metrics.InferenceDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues(kind, "error").Inc()
		s.logger.Error().Err(err).Str("kind", kind).Msg("inference provider call failed")
		return "", fmt.Errorf("%s: %w: %w", kind, domain.ErrInferenceFailed, err)
	}
	return text, nil
}

// parseSpecialties extracts the specialty list from a provider answer, which
// may be wrapped in a markdown code fence. It reports false when the answer is
// not a non-empty JSON array of strings.
func parseSpecialties(text string) ([]string, bool) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "```", ""))
	if !strings.HasPrefix(cleaned, "[") || !strings.HasSuffix(cleaned, "]") {
		return nil, false
	}

	var raw []string
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, false
	}

	out := make([]string, 0, maxSpecialties)
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == maxSpecialties {
			break
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
