package story

import (
	"context"

	"github.com/segmentio/ksuid"

	"talespin/pkg/schema"
	"talespin/pkg/utils"
)

// Registry maps session ids to engines for the process lifetime. There is no
// eviction; abandoned sessions live until the process exits.
type Registry struct {
	gen      Generator
	sessions *utils.SyncMap[map[string]*Engine, string, *Engine]
}

func NewRegistry(gen Generator) *Registry {
	return &Registry{
		gen:      gen,
		sessions: utils.NewSyncMap[map[string]*Engine](),
	}
}

// Create builds a fresh engine, starts it, and stores it under a new
// collision-resistant id.
func (r *Registry) Create(ctx context.Context) (string, *schema.Scene) {
	engine := NewEngine(r.gen)
	scene := engine.Start(ctx)
	id := ksuid.New().String()
	r.sessions.Store(id, engine)
	return id, scene
}

// Get returns the engine for a session id.
func (r *Registry) Get(id string) (*Engine, bool) {
	return r.sessions.Load(id)
}

// Len reports how many sessions are live.
func (r *Registry) Len() int { return r.sessions.Len() }
