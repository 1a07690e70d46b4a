package similarity

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by FindSimilar.
var (
	// ErrInvalidInput is returned for empty or uninterpretable query text,
	// or when the interpreted address lacks province, city or county.
	ErrInvalidInput = errors.New("invalid address input")

	// ErrNoCorpus is returned when the resolved region has no corpus.
	ErrNoCorpus = errors.New("no corpus for region")
)

// NoCorpusError carries the display name of the region that has no corpus.
type NoCorpusError struct {
	Region string
}

func (e *NoCorpusError) Error() string {
	return fmt.Sprintf("no historical address corpus for region '%s'", e.Region)
}

func (e *NoCorpusError) Is(target error) bool { return target == ErrNoCorpus }

// InputError wraps a validation failure with context.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid address input: %s", e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
