package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator abstracts the upstream generative model so handlers can be
// tested with fakes.
type Generator interface {
	// Chat primes a session with the system prompt and a scripted model
	// acknowledgment, then sends the visitor's message.
	Chat(ctx context.Context, system, ack, message string) (string, error)
	// Generate runs a single prompt without history.
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements Generator against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Chat(ctx context.Context, system, ack, message string) (string, error) {
	history := []*genai.Content{
		genai.NewContentFromText(system, genai.RoleUser),
		genai.NewContentFromText(ack, genai.RoleModel),
	}
	chat, err := g.client.Chats.Create(ctx, g.model, nil, history)
	if err != nil {
		return "", fmt.Errorf("create chat session: %w", err)
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
