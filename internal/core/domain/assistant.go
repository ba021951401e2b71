package domain

import "errors"

var (
	ErrSymptomsTooShort = errors.New("invalid symptoms provided")
	ErrConcernsTooShort = errors.New("concerns description too short")
	ErrInferenceFailed  = errors.New("inference provider failed")
)

// DefaultSpecialty is recommended whenever the provider's answer cannot be read.
const DefaultSpecialty = "General Practitioner"
