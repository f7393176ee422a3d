package generate

import (
	"context"
	"regexp"
	"sync"

	"talespin/pkg/schema"
)

// imagePromptMaxChars is a hard cut, not word-boundary aware.
const imagePromptMaxChars = 100

var speakerTagRX = regexp.MustCompile(`\[S\d+\]`)

// SceneGenerator composes the generation client into whole scenes: text
// first, then image, narration, and choices off the text concurrently.
type SceneGenerator struct {
	Client *Client
}

func NewSceneGenerator(c *Client) *SceneGenerator {
	return &SceneGenerator{Client: c}
}

// NextScene produces the scene that follows previousText under the given
// action. Each field degrades independently; the call as a whole never fails.
func (g *SceneGenerator) NextScene(ctx context.Context, previousText, action string) *schema.Scene {
	text := g.Client.GenerateText(ctx, previousText, action)

	imagePrompt := action + " - " + firstRunes(text, imagePromptMaxChars)

	var (
		wg       sync.WaitGroup
		imageURL *string
		audioURL *string
		choices  []string
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		imageURL = g.Client.GenerateImage(ctx, imagePrompt)
	}()
	go func() {
		defer wg.Done()
		audioURL = g.Client.GenerateSpeech(ctx, withSpeakerTag(text))
	}()
	go func() {
		defer wg.Done()
		choices = g.Client.GenerateChoices(ctx, text)
	}()
	wg.Wait()

	return &schema.Scene{
		Text:     text,
		ImageURL: imageURL,
		AudioURL: audioURL,
		Choices:  choices,
	}
}

// withSpeakerTag prefixes a narrator tag unless the text already carries one.
func withSpeakerTag(text string) string {
	if speakerTagRX.MatchString(text) {
		return text
	}
	return "[S1] " + text
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
