// Package inference wraps the downstream generative providers behind narrow
// interfaces. Implementations return errors freely; containment to fallback
// values happens one layer up in pkg/generate.
package inference

import (
	"context"

	"github.com/openai/openai-go/v3"
)

// TextProvider runs a chat completion and returns the raw model output.
type TextProvider interface {
	CompleteText(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

// ImageProvider synthesizes one image for a prompt. The result carries either
// a hosted URL or raw bytes, depending on what the provider hands back.
type ImageProvider interface {
	CreateImage(ctx context.Context, prompt string) (Image, error)
}

// SpeechProvider synthesizes narration audio (MP3 bytes) for the given input.
type SpeechProvider interface {
	CreateSpeech(ctx context.Context, input string) ([]byte, error)
}

// Image is one generated image: a hosted URL, raw bytes, or both.
type Image struct {
	URL  string
	Data []byte
}
