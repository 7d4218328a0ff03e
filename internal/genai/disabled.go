package genai

import (
	"context"
	"errors"
)

var ErrDisabled = errors.New("genai: generation disabled")

// Disabled is the Generator used when no provider key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}
