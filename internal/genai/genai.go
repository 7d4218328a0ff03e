// Package genai wraps the generative-text provider behind a one-method
// interface so handlers can be tested without the network.
package genai

import "context"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
