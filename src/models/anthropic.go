package models

import (
	"context"
	"encoding/base64"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicLLM implements Agent on the Messages API. PDFs and images are
// sent as native content blocks.
type AnthropicLLM struct {
	Client       *anthropic.Client
	Model        string
	MaxTokens    int
	PromptPrefix string
}

// NewAnthropicLLM constructs a client. It reads ANTHROPIC_API_KEY from the env.
func NewAnthropicLLM(model, promptPrefix string) *AnthropicLLM {
	cl := anthropic.NewClient(anthropicopt.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")))
	return &AnthropicLLM{
		Client:       &cl,
		Model:        model,
		MaxTokens:    1024,
		PromptPrefix: promptPrefix,
	}
}

func (a *AnthropicLLM) Generate(ctx context.Context, prompt string) (any, error) {
	return a.send(ctx, []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(withPrefix(a.PromptPrefix, prompt)),
	})
}

func anthropicNative(mt string) bool {
	switch mt {
	case mimePDF, "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func (a *AnthropicLLM) GenerateWithFiles(ctx context.Context, prompt string, files []File) (any, error) {
	native, rest := splitFiles(files, anthropicNative)
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(native)+1)
	for _, f := range native {
		encoded := base64.StdEncoding.EncodeToString(f.Data)
		if isPDFMIME(f.MIME) {
			blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: encoded}))
			continue
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(f.MIME, encoded))
	}
	blocks = append(blocks, anthropic.NewTextBlock(CombinePromptWithFiles(withPrefix(a.PromptPrefix, prompt), rest)))
	return a.send(ctx, blocks)
}

func (a *AnthropicLLM) send(ctx context.Context, blocks []anthropic.ContentBlockParamUnion) (string, error) {
	msg, err := a.Client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: int64(a.MaxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

var _ Agent = (*AnthropicLLM)(nil)
