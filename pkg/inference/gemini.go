package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// GeminiProvider implements text and image generation through Google's genai
// SDK. It carries no speech capability; callers pair it with OpenAI for TTS.
type GeminiProvider struct {
	client     *genai.Client
	apiKey     string
	model      string
	imageModel string
}

// NewGeminiProvider creates a provider instance using the genai client.
func NewGeminiProvider(apiKey string, model string) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{
		client:     client,
		apiKey:     apiKey,
		model:      model,
		imageModel: "imagen-3.0-generate-002",
	}, nil
}

func (o *GeminiProvider) ChangeConfig(config *genai.ClientConfig) {
	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return
	}
	o.client = client
}

// CompleteText sends text to the Gemini content endpoint and returns the output.
func (o *GeminiProvider) CompleteText(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleModel),
		MaxOutputTokens:   int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini completion error: %w", err)
	}
	if result.Text() == "" {
		return "", errors.New("empty completion content")
	}

	return result.Text(), nil
}

// CreateImage synthesizes one scene illustration via Imagen.
func (o *GeminiProvider) CreateImage(ctx context.Context, prompt string) (Image, error) {
	resp, err := o.client.Models.GenerateImages(ctx, o.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return Image{}, fmt.Errorf("gemini image error: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return Image{}, errors.New("no images returned")
	}
	return Image{Data: resp.GeneratedImages[0].Image.ImageBytes}, nil
}
