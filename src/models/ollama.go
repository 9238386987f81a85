package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

type OllamaLLM struct {
	Client       *ollama.Client
	Model        string
	PromptPrefix string
}

func NewOllamaLLM(model string, promptPrefix string) (*OllamaLLM, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}
	c := ollama.NewClient(u, &http.Client{Timeout: 120 * time.Second})
	return &OllamaLLM{Client: c, Model: model, PromptPrefix: promptPrefix}, nil
}

func (o *OllamaLLM) Generate(ctx context.Context, prompt string) (any, error) {
	return o.generate(ctx, withPrefix(o.PromptPrefix, prompt), nil)
}

// GenerateWithFiles sends images natively; text files are inlined and the
// rest (PDF, DOCX) are only referenced by name.
func (o *OllamaLLM) GenerateWithFiles(ctx context.Context, prompt string, files []File) (any, error) {
	images, rest := splitFiles(files, isImageMIME)
	imageData := make([]ollama.ImageData, 0, len(images))
	for _, f := range images {
		imageData = append(imageData, ollama.ImageData(f.Data))
	}
	full := CombinePromptWithFiles(withPrefix(o.PromptPrefix, prompt), rest)
	return o.generate(ctx, full, imageData)
}

func (o *OllamaLLM) generate(ctx context.Context, prompt string, images []ollama.ImageData) (string, error) {
	req := &ollama.GenerateRequest{
		Model:  o.Model,
		Prompt: prompt,
		Images: images,
	}
	var text strings.Builder
	err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return text.String(), nil
}

var _ Agent = (*OllamaLLM)(nil)
