// Package view holds the view registry and the switcher that tracks which
// registered view is active.
//
// The registry is built once at startup and never mutated. A Switcher owns the
// only mutable state, the active id, and projects it into a Frame that hosts
// (terminal, web) paint.
package view

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"dtmas/internal/scene"
)

// ID names one view in a registry.
type ID string

// RenderFunc produces a view's scene. It must not depend on mutable state.
type RenderFunc func() *scene.Scene

// Entry is one registered view.
type Entry struct {
	ID      ID
	Label   string
	Caption string // optional markdown shown under the diagram
	Render  RenderFunc
}

// Descriptor is the (id, label) pair used to build selector controls.
type Descriptor struct {
	ID    ID
	Label string
}

// Registry is an ordered, immutable set of views.
type Registry struct {
	entries []Entry
	index   map[ID]int
}

// maxSuggestDistance bounds how far a mistyped id may be from a suggestion.
const maxSuggestDistance = 3

// NewRegistry builds a registry from entries in display order.
func NewRegistry(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[ID]int, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidEntry, i)
		}
		if e.Render == nil {
			return nil, fmt.Errorf("%w: %q has no render func", ErrInvalidEntry, e.ID)
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, &DuplicateViewError{ID: e.ID}
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// MustRegistry is NewRegistry for static content; it panics on error.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the entry registered under id.
func (r *Registry) Get(id ID) (Entry, bool) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Index returns the display position of id, or -1.
func (r *Registry) Index(id ID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// At returns the entry at display position i.
func (r *Registry) At(i int) (Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[i], true
}

// List returns descriptors in registration order. The slice is a copy.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = Descriptor{ID: e.ID, Label: e.Label}
	}
	return out
}

// IDs returns the registered ids in order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ID
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// First returns the id of the first registered entry.
func (r *Registry) First() ID { return r.entries[0].ID }

// Suggest returns the registered id closest to raw, if one is within a few
// edits. Comparison ignores case.
func (r *Registry) Suggest(raw string) (ID, bool) {
	needle := strings.ToLower(raw)
	best, bestDist := ID(""), maxSuggestDistance+1
	for _, e := range r.entries {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(string(e.ID)))
		if d < bestDist {
			best, bestDist = e.ID, d
		}
	}
	if best == "" || bestDist == 0 && ID(raw) == best {
		return "", false
	}
	return best, true
}

// Lookup is Get for callers that want an error. Unknown ids yield an
// *InvalidViewError carrying the closest registered id.
func (r *Registry) Lookup(id ID) (Entry, error) {
	if e, ok := r.Get(id); ok {
		return e, nil
	}
	err := &InvalidViewError{ID: id}
	if s, ok := r.Suggest(string(id)); ok {
		err.Suggestion = s
	}
	return Entry{}, err
}
