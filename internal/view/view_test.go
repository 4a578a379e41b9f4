package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtmas/internal/scene"
)

func constScene(title string) RenderFunc {
	return func() *scene.Scene {
		return scene.New(title, 100, 50).Add(scene.Label(50, 25, title, scene.SizeBase, "#000"))
	}
}

func fiveEntries() []Entry {
	return []Entry{
		{ID: "architecture", Label: "System Architecture", Render: constScene("architecture")},
		{ID: "protocolPhase1", Label: "Proposal & Assignment", Render: constScene("phase1")},
		{ID: "protocolPhase2", Label: "Execution & Completion", Render: constScene("phase2")},
		{ID: "dataflow", Label: "Data Transformation", Caption: "**twin**", Render: constScene("dataflow")},
		{ID: "routing", Label: "Routing Example", Render: constScene("routing")},
	}
}

func selectedIDs(cs []Control) []ID {
	var out []ID
	for _, c := range cs {
		if c.Selected {
			out = append(out, c.ID)
		}
	}
	return out
}

func TestNewRegistry_Empty(t *testing.T) {
	_, err := NewRegistry()
	assert.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	entries := append(fiveEntries(), Entry{ID: "dataflow", Label: "again", Render: constScene("x")})
	_, err := NewRegistry(entries...)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateView)

	var dup *DuplicateViewError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, ID("dataflow"), dup.ID)
}

func TestNewRegistry_InvalidEntries(t *testing.T) {
	_, err := NewRegistry(Entry{Label: "no id", Render: constScene("x")})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = NewRegistry(Entry{ID: "a", Label: "no render"})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestMustRegistry_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRegistry() })
}

func TestRegistry_GetAndList(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)

	e, ok := reg.Get("routing")
	require.True(t, ok)
	assert.Equal(t, "Routing Example", e.Label)

	_, ok = reg.Get("bogus")
	assert.False(t, ok)

	want := []ID{"architecture", "protocolPhase1", "protocolPhase2", "dataflow", "routing"}
	assert.Equal(t, want, reg.IDs())
	list := reg.List()
	require.Len(t, list, 5)
	for i, d := range list {
		assert.Equal(t, want[i], d.ID)
	}
	assert.Equal(t, 3, reg.Index("dataflow"))
	assert.Equal(t, -1, reg.Index("bogus"))
}

func TestRegistry_ListIsACopy(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	list := reg.List()
	list[0].ID = "mutated"
	assert.Equal(t, ID("architecture"), reg.List()[0].ID)
}

func TestRegistry_Suggest(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)

	s, ok := reg.Suggest("datflow")
	require.True(t, ok)
	assert.Equal(t, ID("dataflow"), s)

	s, ok = reg.Suggest("ROUTING")
	require.True(t, ok)
	assert.Equal(t, ID("routing"), s)

	_, ok = reg.Suggest("bogus")
	assert.False(t, ok)

	_, ok = reg.Suggest("routing")
	assert.False(t, ok, "an exact id needs no suggestion")
}

func TestSwitcher_InitialIsFirst(t *testing.T) {
	for _, entries := range [][]Entry{
		fiveEntries(),
		fiveEntries()[3:],
		{{ID: "only", Render: constScene("only")}},
	} {
		s := NewSwitcher(MustRegistry(entries...))
		assert.Equal(t, entries[0].ID, s.Active())
		assert.Equal(t, []ID{entries[0].ID}, selectedIDs(s.Render().Controls))
	}
}

func TestSwitcher_SelectRendersEntry(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	s := NewSwitcher(reg)
	for _, id := range reg.IDs() {
		require.NoError(t, s.Select(id))
		f := s.Render()
		e, _ := reg.Get(id)
		assert.Equal(t, e.Render(), f.Scene)
		assert.Equal(t, []ID{id}, selectedIDs(f.Controls))
		assert.Equal(t, id, f.Active)
	}
}

func TestSwitcher_SelectUnknownKeepsState(t *testing.T) {
	s := NewSwitcher(MustRegistry(fiveEntries()...))
	require.NoError(t, s.Select("routing"))

	err := s.Select("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidView)
	assert.Equal(t, ID("routing"), s.Active())

	var inv *InvalidViewError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, ID("bogus"), inv.ID)
	assert.Empty(t, inv.Suggestion)
}

func TestSwitcher_SelectTypoSuggests(t *testing.T) {
	s := NewSwitcher(MustRegistry(fiveEntries()...))
	err := s.Select("routng")
	var inv *InvalidViewError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, ID("routing"), inv.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "routing"`)
}

func TestSwitcher_RenderIdempotent(t *testing.T) {
	s := NewSwitcher(MustRegistry(fiveEntries()...))
	require.NoError(t, s.Select("dataflow"))
	first, second := s.Render(), s.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, ID("dataflow"), s.Active())
	assert.Equal(t, "**twin**", first.Caption)
}

func TestSwitcher_ListOrderIndependentOfActive(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	s := NewSwitcher(reg)
	before := reg.List()
	require.NoError(t, s.Select("routing"))
	assert.Equal(t, before, reg.List())
	for i, c := range s.Render().Controls {
		assert.Equal(t, before[i].ID, c.ID)
		assert.Equal(t, i, c.Index)
	}
}

func TestSwitcher_NextPrevWrap(t *testing.T) {
	s := NewSwitcher(MustRegistry(fiveEntries()...))
	assert.Equal(t, ID("routing"), s.Prev())
	assert.Equal(t, ID("architecture"), s.Next())
	assert.Equal(t, ID("protocolPhase1"), s.Next())
}

func TestSwitcher_SelectIndex(t *testing.T) {
	s := NewSwitcher(MustRegistry(fiveEntries()...))
	require.NoError(t, s.SelectIndex(2))
	assert.Equal(t, ID("protocolPhase2"), s.Active())

	assert.ErrorIs(t, s.SelectIndex(5), ErrInvalidView)
	assert.ErrorIs(t, s.SelectIndex(-1), ErrInvalidView)
	assert.Equal(t, ID("protocolPhase2"), s.Active())
}

func TestSwitcher_OnChange(t *testing.T) {
	type change struct{ from, to ID }
	var got []change
	s := NewSwitcher(MustRegistry(fiveEntries()...), WithOnChange(func(from, to ID) {
		got = append(got, change{from, to})
	}))

	require.NoError(t, s.Select("dataflow"))
	require.NoError(t, s.Select("dataflow"))
	_ = s.Select("bogus")
	s.Next()

	assert.Equal(t, []change{
		{"architecture", "dataflow"},
		{"dataflow", "routing"},
	}, got)
}

func TestSwitcher_IndependentInstances(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	a, b := NewSwitcher(reg), NewSwitcher(reg)
	require.NoError(t, a.Select("routing"))
	assert.Equal(t, ID("architecture"), b.Active())
}

func TestScenario_FiveViews(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	s := NewSwitcher(reg)

	assert.Equal(t, []ID{"architecture"}, selectedIDs(s.Render().Controls))

	require.NoError(t, s.Select("dataflow"))
	f := s.Render()
	assert.Equal(t, []ID{"dataflow"}, selectedIDs(f.Controls))
	want, _ := reg.Get("dataflow")
	assert.Equal(t, want.Render(), f.Scene)

	assert.ErrorIs(t, s.Select("bogus"), ErrInvalidView)
	assert.Equal(t, []ID{"dataflow"}, selectedIDs(s.Render().Controls))
}

func TestControls_Projection(t *testing.T) {
	descs := []Descriptor{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	assert.Equal(t, []Control{
		{ID: "a", Label: "A", Index: 0},
		{ID: "b", Label: "B", Index: 1, Selected: true},
	}, Controls(descs, "b"))
	assert.Empty(t, selectedIDs(Controls(descs, "zzz")))
}

func TestRegistry_Lookup(t *testing.T) {
	reg := MustRegistry(fiveEntries()...)
	e, err := reg.Lookup("routing")
	require.NoError(t, err)
	assert.Equal(t, ID("routing"), e.ID)

	_, err = reg.Lookup("dataflw")
	var inv *InvalidViewError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, ID("dataflow"), inv.Suggestion)
}
