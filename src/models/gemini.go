package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiLLM struct {
	Client       *genai.Client
	Model        string
	PromptPrefix string
}

func NewGeminiLLM(ctx context.Context, model, promptPrefix string) (*GeminiLLM, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{Client: client, Model: model, PromptPrefix: promptPrefix}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (any, error) {
	return g.generate(ctx, genai.Text(withPrefix(g.PromptPrefix, prompt)))
}

func geminiNative(mt string) bool {
	switch mt {
	case mimePDF, "image/png", "image/jpeg", "image/webp", "image/heic", "image/heif":
		return true
	default:
		return false
	}
}

// GenerateWithFiles sends PDFs and images as inline blobs.
func (g *GeminiLLM) GenerateWithFiles(ctx context.Context, prompt string, files []File) (any, error) {
	native, rest := splitFiles(files, geminiNative)
	parts := make([]genai.Part, 0, len(native)+1)
	parts = append(parts, genai.Text(CombinePromptWithFiles(withPrefix(g.PromptPrefix, prompt), rest)))
	for _, f := range native {
		parts = append(parts, genai.Blob{MIMEType: f.MIME, Data: f.Data})
	}
	return g.generate(ctx, parts...)
}

func (g *GeminiLLM) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.Client.GenerativeModel(g.Model).GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

var _ Agent = (*GeminiLLM)(nil)
