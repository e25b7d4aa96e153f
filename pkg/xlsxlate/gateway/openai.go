package gateway

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultBaseURL is the OpenAI-compatible endpoint of the Zhipu GLM service.
const DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4/"

// OpenAICapability calls an OpenAI-compatible chat completions endpoint.
type OpenAICapability struct {
	client openai.Client
}

// NewOpenAICapability creates a capability client. Retries are disabled:
// a failed call is passed through by the Gateway.
func NewOpenAICapability(apiKey, baseURL string, opts ...option.RequestOption) *OpenAICapability {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	return &OpenAICapability{client: openai.NewClient(append(base, opts...)...)}
}

// Complete sends one system+user exchange and returns the first choice.
func (c *OpenAICapability) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
		TopP:        openai.Float(req.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
