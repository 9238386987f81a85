package models

import (
	"context"
	"fmt"
	"strings"
)

// DummyLLM is a lightweight model implementation useful for local testing without API calls.
type DummyLLM struct {
	Prefix string
}

func NewDummyLLM(prefix string) *DummyLLM {
	if strings.TrimSpace(prefix) == "" {
		prefix = "Dummy response:"
	}
	return &DummyLLM{Prefix: prefix}
}

// Generate echoes the last non-empty line of the prompt.
func (d *DummyLLM) Generate(_ context.Context, prompt string) (any, error) {
	lines := strings.Split(prompt, "\n")
	last := "<empty prompt>"
	for i := len(lines) - 1; i >= 0; i-- {
		if candidate := strings.TrimSpace(lines[i]); candidate != "" {
			last = candidate
			break
		}
	}
	return fmt.Sprintf("%s %s", d.Prefix, last), nil
}

// GenerateWithFiles returns the full composed prompt so callers can see
// exactly what a real model would receive.
func (d *DummyLLM) GenerateWithFiles(_ context.Context, prompt string, files []File) (any, error) {
	return fmt.Sprintf("%s %s", d.Prefix, CombinePromptWithFiles(prompt, files)), nil
}

var _ Agent = (*DummyLLM)(nil)
