package ports

import "context"

// TextGenerator is the generative-text inference provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssistantService wraps the inference provider for patient-facing helpers.
type AssistantService interface {
	RecommendSpecialties(ctx context.Context, symptoms string) ([]string, error)
	SummarizeConcerns(ctx context.Context, concerns string) (string, error)
}
