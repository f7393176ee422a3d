// Package story holds the per-session state machine and the process-wide
// session registry.
package story

import (
	"context"
	"errors"

	"talespin/pkg/normalize"
	"talespin/pkg/schema"
)

// openingContext seeds the very first scene; there is no previous scene yet.
const openingContext = "A brand new adventure is about to begin. The player has just arrived at the edge of an unknown world."

// startAction is the literal action used for the opening scene.
const startAction = "Game start"

// ErrNotStarted is returned by Choose before Start has produced a scene.
var ErrNotStarted = errors.New("story not started")

// Generator produces the next scene for a (previous text, action) pair.
type Generator interface {
	NextScene(ctx context.Context, previousText, action string) *schema.Scene
}

// Engine owns one session's story: the current scene and the append-only
// history of every scene it replaced, in chronological order.
//
// An Engine is not synchronized; a client double-submitting against the same
// session can interleave two Choose calls. Accepted for single-player scope.
type Engine struct {
	gen     Generator
	current *schema.Scene
	history []schema.Scene
}

func NewEngine(gen Generator) *Engine {
	return &Engine{gen: gen}
}

// Start generates the opening scene. Calling Start on an active engine is an
// idempotent reset: history is cleared and a fresh opening scene is produced.
func (e *Engine) Start(ctx context.Context) *schema.Scene {
	scene := e.gen.NextScene(ctx, openingContext, startAction)
	e.current = scene
	e.history = nil
	return scene
}

// Choose advances the story by the choice at index. An out-of-range index is
// not an error: it resolves to a modulo-wrapped default choice.
func (e *Engine) Choose(ctx context.Context, index int) (*schema.Scene, error) {
	if e.current == nil {
		return nil, ErrNotStarted
	}

	action := e.resolveChoice(index)
	e.history = append(e.history, e.current.Clone())

	next := e.gen.NextScene(ctx, e.current.Text, action)
	e.current = next
	return next, nil
}

func (e *Engine) resolveChoice(index int) string {
	if index >= 0 && index < len(e.current.Choices) {
		if c := e.current.Choices[index]; c != "" {
			return c
		}
	}
	defaults := normalize.DefaultChoices()
	return defaults[((index%len(defaults))+len(defaults))%len(defaults)]
}

// Current returns the scene the story is at, or nil before Start.
func (e *Engine) Current() *schema.Scene { return e.current }

// History returns the previous scenes in chronological order.
func (e *Engine) History() []schema.Scene { return e.history }
