package inference

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIProvider implements all three generation capabilities using OpenAI's
// official Go SDK.
type OpenAIProvider struct {
	client     *openai.Client
	apiKey     string
	model      string
	imageModel string
	ttsModel   string
	ttsVoice   string
}

// NewOpenAIProvider creates a provider instance using the OpenAI client.
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client:     &client,
		apiKey:     apiKey,
		model:      cmp.Or(model, "gpt-4o-mini"),
		imageModel: string(openai.ImageModelDallE3),
		ttsModel:   string(openai.SpeechModelTTS1),
		ttsVoice:   "alloy",
	}
}

func (o *OpenAIProvider) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

func (o *OpenAIProvider) SetModel(model string) {
	o.model = model
}

func (o *OpenAIProvider) SetImageModel(model string) {
	if model != "" {
		o.imageModel = model
	}
}

func (o *OpenAIProvider) SetSpeech(model, voice string) {
	if model != "" {
		o.ttsModel = model
	}
	if voice != "" {
		o.ttsVoice = voice
	}
}

// CompleteText sends text to the chat completion endpoint and returns the output.
func (o *OpenAIProvider) CompleteText(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		params = &(*params)
	}
	params.Model = cmp.Or(params.Model, o.model)
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			}},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Role: "user",
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: param.Opt[string]{Value: user},
				},
			},
		},
	}

	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	params.Temperature = openai.Float(cmp.Or(params.Temperature.Value, 0.8))
	params.TopP = openai.Float(cmp.Or(params.TopP.Value, 1.0))

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("openai completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return resp.Choices[0].Message.Content, nil
}

// CreateImage synthesizes one scene illustration via the Images endpoint.
func (o *OpenAIProvider) CreateImage(ctx context.Context, prompt string) (Image, error) {
	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(o.imageModel),
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return Image{}, fmt.Errorf("openai image error: %w", err)
	}
	if len(resp.Data) == 0 {
		return Image{}, errors.New("no images returned")
	}

	img := resp.Data[0]
	if img.URL != "" {
		return Image{URL: img.URL}, nil
	}
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return Image{}, fmt.Errorf("decoding image payload: %w", err)
		}
		return Image{Data: data}, nil
	}
	return Image{}, errors.New("image response had neither url nor payload")
}

// CreateSpeech synthesizes MP3 narration via the Audio Speech endpoint.
func (o *OpenAIProvider) CreateSpeech(ctx context.Context, input string) ([]byte, error) {
	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.ttsModel),
		Input:          input,
		Voice:          openai.AudioSpeechNewParamsVoice(o.ttsVoice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech payload: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty speech payload")
	}
	return data, nil
}

// IsAuthError reports whether err is an authentication failure from the API.
// Used for logging only; the fallback path does not change.
func IsAuthError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
