package ingestion

import "errors"

var (
	// ErrContactRepositoryRequired is returned when a contact repository is not provided.
	ErrContactRepositoryRequired = errors.New("contact repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
