package similarity

import "github.com/address-similarity/app/models"

// Interpreter turns free address text into a structured address. The engine
// only consumes this boundary; the reference implementation lives in
// internal/interpret.
type Interpreter interface {
	Interpret(text string) (*models.AddressEntity, error)
}

// Segmenter splits leftover free text into word-like tokens.
type Segmenter interface {
	Segment(text string) []string
}
