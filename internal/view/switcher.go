package view

import (
	"strconv"

	"dtmas/internal/scene"
)

// Control is one selectable entry in a host's view selector.
type Control struct {
	ID       ID
	Label    string
	Index    int
	Selected bool
}

// Frame is what a host paints: the selector controls and the active scene.
type Frame struct {
	Active   ID
	Controls []Control
	Scene    *scene.Scene
	Caption  string
}

// Switcher tracks the active view of one registry. It is not safe for
// concurrent use; each host owns its own.
type Switcher struct {
	reg      *Registry
	active   ID
	onChange func(from, to ID)
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithOnChange registers fn to run after the active view changes. It is not
// called for rejected selections or for re-selecting the active view.
func WithOnChange(fn func(from, to ID)) Option {
	return func(s *Switcher) { s.onChange = fn }
}

// NewSwitcher creates a switcher whose active view is the registry's first.
func NewSwitcher(reg *Registry, opts ...Option) *Switcher {
	s := &Switcher{reg: reg, active: reg.First()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry returns the registry the switcher selects from.
func (s *Switcher) Registry() *Registry { return s.reg }

// Active returns the active view id.
func (s *Switcher) Active() ID { return s.active }

// Select makes id the active view. Unknown ids return an *InvalidViewError
// and leave the active view unchanged.
func (s *Switcher) Select(id ID) error {
	if _, err := s.reg.Lookup(id); err != nil {
		return err
	}
	s.set(id)
	return nil
}

// SelectIndex selects the view at display position i.
func (s *Switcher) SelectIndex(i int) error {
	e, ok := s.reg.At(i)
	if !ok {
		return &InvalidViewError{ID: ID(strconv.Itoa(i + 1))}
	}
	s.set(e.ID)
	return nil
}

// Next activates the following view, wrapping past the last.
func (s *Switcher) Next() ID {
	i := s.reg.Index(s.active)
	e, _ := s.reg.At((i + 1) % s.reg.Len())
	s.set(e.ID)
	return s.active
}

// Prev activates the preceding view, wrapping before the first.
func (s *Switcher) Prev() ID {
	i := s.reg.Index(s.active) - 1
	if i < 0 {
		i = s.reg.Len() - 1
	}
	e, _ := s.reg.At(i)
	s.set(e.ID)
	return s.active
}

func (s *Switcher) set(id ID) {
	from := s.active
	s.active = id
	if s.onChange != nil && from != id {
		s.onChange(from, id)
	}
}

// Render projects the current state into a Frame. It does not mutate the
// switcher; calling it twice in a row yields equal frames.
func (s *Switcher) Render() Frame {
	e, _ := s.reg.Get(s.active)
	return Frame{
		Active:   s.active,
		Controls: Controls(s.reg.List(), s.active),
		Scene:    e.Render(),
		Caption:  e.Caption,
	}
}

// Controls maps descriptors to controls, marking the one matching active.
func Controls(descs []Descriptor, active ID) []Control {
	out := make([]Control, len(descs))
	for i, d := range descs {
		out[i] = Control{ID: d.ID, Label: d.Label, Index: i, Selected: d.ID == active}
	}
	return out
}
