package llm

import "context"

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close() error
}
