package calculator

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
)

// Handler replaces the standard pipeline for one character
type Handler interface {
	// Key returns the lowercase character id the handler is registered under
	Key() string

	// Compute returns the final per-hit damage for skill using the merged stats
	Compute(meta *character.Meta, skill character.Skill, merged stats.Mapping) (int64, error)
}

// BreakdownHandler is a Handler that runs the standard pipeline on adjusted
// inputs and can report the intermediate values
type BreakdownHandler interface {
	Handler
	Breakdown(meta *character.Meta, skill character.Skill, merged stats.Mapping) (*Breakdown, error)
}

// MultiHitHandler is a Handler whose hits differ from each other. ComputeHits
// returns the damage of each hit in order.
type MultiHitHandler interface {
	Handler
	ComputeHits(meta *character.Meta, skill character.Skill, merged stats.Mapping) ([]int64, error)
}

// Registry maps character ids to override handlers. It is filled once at
// construction and only read afterwards, so it is safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates a registry holding the given handlers
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler, len(handlers)),
	}
	for _, h := range handlers {
		r.handlers[strings.ToLower(h.Key())] = h
	}
	return r
}

// Lookup returns the handler for id. An unknown id is not an error; it means
// the standard pipeline applies.
func (r *Registry) Lookup(id string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(id)]
	return h, ok
}

// Keys returns the registered character ids in sorted order
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry holds every special character
var DefaultRegistry = NewRegistry(
	NewBiscuitHandler(),
	NewEspadaHandler(),
	NewFreyjaHandler(),
	NewRyanHandler(),
)
