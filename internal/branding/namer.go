package branding

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// MaxNames is the number of candidates a generation returns at most.
const MaxNames = 3

const namePrompt = `
Act as a world-class branding agency.
Project: %s
Task: Create 3 unique, modern, and memorable brand names.
Output: ONLY the 3 names separated by commas. No numbering.
`

// TextModel produces a text completion for a prompt.
type TextModel interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// NameGenerator asks a text model for brand name candidates.
type NameGenerator struct {
	text TextModel
}

func NewNameGenerator(text TextModel) *NameGenerator {
	return &NameGenerator{text: text}
}

// Generate returns up to MaxNames candidates for description.
func (g *NameGenerator) Generate(ctx context.Context, description, model string) ([]string, error) {
	out, err := g.text.Generate(ctx, model, fmt.Sprintf(namePrompt, description))
	if err != nil {
		return nil, err
	}
	return ParseNames(out), nil
}

// ParseNames splits a comma separated completion into trimmed names,
// dropping empty entries and keeping at most MaxNames.
func ParseNames(text string) []string {
	names := make([]string, 0, MaxNames)
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == MaxNames {
			break
		}
	}
	return names
}

// GeminiModel is a TextModel backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel creates a Gemini client for apiKey.
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiModel{client: client}, nil
}

// Generate runs a single-turn completion.
func (m *GeminiModel) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
