package models

import (
	"context"
	"encoding/base64"
	"errors"
	"os"

	"github.com/sashabaranov/go-openai"
)

type OpenAILLM struct {
	Client       *openai.Client
	Model        string
	PromptPrefix string
}

func NewOpenAILLM(model string, promptPrefix string) *OpenAILLM {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // fallback
	}
	return &OpenAILLM{Client: openai.NewClient(apiKey), Model: model, PromptPrefix: promptPrefix}
}

func (o *OpenAILLM) Generate(ctx context.Context, prompt string) (any, error) {
	return o.complete(ctx, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: withPrefix(o.PromptPrefix, prompt),
	})
}

// openAIImageMIME returns the image types the chat API accepts as data URLs.
func openAIImageMIME(mt string) bool {
	switch mt {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// GenerateWithFiles sends supported images as data URLs; everything else
// goes through the prompt.
func (o *OpenAILLM) GenerateWithFiles(ctx context.Context, prompt string, files []File) (any, error) {
	images, rest := splitFiles(files, openAIImageMIME)
	text := CombinePromptWithFiles(withPrefix(o.PromptPrefix, prompt), rest)
	if len(images) == 0 {
		return o.complete(ctx, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})
	}

	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: text}}
	for _, f := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + f.MIME + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	return o.complete(ctx, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, MultiContent: parts})
}

func (o *OpenAILLM) complete(ctx context.Context, msg openai.ChatCompletionMessage) (string, error) {
	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.Model,
		Messages: []openai.ChatCompletionMessage{msg},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Agent = (*OpenAILLM)(nil)
