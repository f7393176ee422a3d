// Package generate turns provider calls into scene fields. The Client is the
// containment boundary: any provider failure degrades to a fallback value
// (placeholder text, nil media URL, default choices) and never propagates.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"talespin/pkg/inference"
	"talespin/pkg/media"
	"talespin/pkg/normalize"
	"talespin/pkg/schema"
	"talespin/pkg/utils"
)

// contextTokenBudget bounds how much prior narrative is embedded in the text
// prompt; the most recent tokens survive.
const contextTokenBudget = 2048

const defaultCallTimeout = 60 * time.Second

type Client struct {
	Text   inference.TextProvider
	Image  inference.ImageProvider
	Speech inference.SpeechProvider
	Store  *media.Store

	// Timeout bounds each provider call; an expired call takes the same
	// fallback path as an outright failure.
	Timeout time.Duration
}

func NewClient(text inference.TextProvider, image inference.ImageProvider, speech inference.SpeechProvider, store *media.Store) *Client {
	return &Client{
		Text:    text,
		Image:   image,
		Speech:  speech,
		Store:   store,
		Timeout: defaultCallTimeout,
	}
}

func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.Timeout)
}

// GenerateText continues the story for the chosen action. Never fails: a
// provider error yields the placeholder text.
func (c *Client) GenerateText(ctx context.Context, storyContext, action string) string {
	if c.Text == nil {
		return normalize.DefaultText
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	window := utils.TrimToTokens(storyContext, contextTokenBudget)
	user := fmt.Sprintf("Story so far:\n%s\n\nThe player chose: %s\n\nContinue the story.", window, action)
	if n, err := utils.NumTokens(user); err == nil {
		log.Debug("story prompt built", "action", action, "tokens", n)
	}

	out, err := c.Text.CompleteText(ctx, nil, storySystemPrompt, user)
	if err != nil {
		c.logFailure("text", err)
		return normalize.DefaultText
	}
	return normalize.Text(out)
}

// GenerateChoices asks for the three next actions and normalizes whatever
// comes back into a valid triple.
func (c *Client) GenerateChoices(ctx context.Context, sceneText string) []string {
	if c.Text == nil {
		return normalize.DefaultChoices()
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	params := &openai.ChatCompletionNewParams{
		ResponseFormat:      schema.ChoicesResponseFormat(),
		MaxCompletionTokens: openai.Int(256),
		Temperature:         openai.Float(0.9),
	}
	out, err := c.Text.CompleteText(ctx, params, choicesSystemPrompt, sceneText)
	if err != nil {
		c.logFailure("choices", err)
		return normalize.DefaultChoices()
	}

	// Structured outputs usually come back as {"choices":[...]}.
	var list schema.ChoiceList
	if err := json.Unmarshal([]byte(utils.CleanJSON(out)), &list); err == nil && len(list.Choices) > 0 {
		return normalize.Choices(list.Choices)
	}
	return normalize.Choices(out)
}

// GenerateImage synthesizes scene art and returns its URL, or nil when any
// step failed. Hosted provider URLs pass through unchanged; raw bytes are
// persisted through the media store.
func (c *Client) GenerateImage(ctx context.Context, prompt string) *string {
	if c.Image == nil {
		return nil
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	img, err := c.Image.CreateImage(ctx, prompt)
	if err != nil {
		c.logFailure("image", err)
		return nil
	}
	if img.URL != "" {
		return &img.URL
	}
	url, err := c.Store.SaveSceneImage(img.Data)
	if err != nil {
		log.Warn("failed persisting scene image", "error", err)
		return nil
	}
	return &url
}

// GenerateSpeech synthesizes narration and returns its URL, or nil when any
// step failed.
func (c *Client) GenerateSpeech(ctx context.Context, text string) *string {
	if c.Speech == nil {
		return nil
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	data, err := c.Speech.CreateSpeech(ctx, text)
	if err != nil {
		c.logFailure("speech", err)
		return nil
	}
	url, err := c.Store.SaveNarration(data)
	if err != nil {
		log.Warn("failed persisting narration", "error", err)
		return nil
	}
	return &url
}

func (c *Client) logFailure(call string, err error) {
	if inference.IsAuthError(err) {
		log.Error("provider authentication failed", "call", call, "error", err)
		return
	}
	log.Warn("generation failed, using fallback", "call", call, "error", err)
}
