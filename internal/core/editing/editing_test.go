package editing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
)

func newProp(name string) func(id string) domain.PropDefinition {
	return func(id string) domain.PropDefinition {
		return domain.PropDefinition{ID: id, Name: name}
	}
}

func names(seq []domain.PropDefinition) []string {
	out := make([]string, len(seq))
	for i, p := range seq {
		out[i] = p.Name
	}
	return out
}

func TestAdd_AppendsWithFreshID(t *testing.T) {
	var props []domain.PropDefinition

	props = Add(props, newProp("p1"))
	props = Add(props, newProp("p2"))
	props = Add(props, newProp("p3"))

	require.Len(t, props, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, names(props))
	assert.NotEmpty(t, props[0].ID)
	assert.NotEqual(t, props[0].ID, props[1].ID)
	assert.NotEqual(t, props[1].ID, props[2].ID)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	orig := Add([]domain.PropDefinition(nil), newProp("p1"))
	orig = orig[:1:1]

	next := Add(orig, newProp("p2"))

	assert.Len(t, orig, 1)
	assert.Len(t, next, 2)
	assert.Equal(t, orig[0], next[0])
}

func TestAdd_PanicsWhenFactoryIgnoresID(t *testing.T) {
	assert.Panics(t, func() {
		Add([]domain.PropDefinition(nil), func(string) domain.PropDefinition {
			return domain.PropDefinition{ID: "fixed"}
		})
	})
}

func TestAddAll_AssignsNewIDs(t *testing.T) {
	existing := Add([]domain.UserInteraction(nil), func(id string) domain.UserInteraction {
		return domain.UserInteraction{ID: id, Description: "click"}
	})
	suggested := []domain.UserInteraction{
		{ID: existing[0].ID, Description: "hover"},
		{Description: "drag"},
	}

	out := AddAll(existing, suggested, func(r domain.UserInteraction, id string) domain.UserInteraction {
		r.ID = id
		return r
	})

	require.Len(t, out, 3)
	assert.Equal(t, "hover", out[1].Description)
	assert.NotEqual(t, existing[0].ID, out[1].ID)
	assert.NotEmpty(t, out[2].ID)
	assert.Len(t, existing, 1)
}

func TestUpdate_KeepsIDAndOrder(t *testing.T) {
	props := Add(Add([]domain.PropDefinition(nil), newProp("a")), newProp("b"))
	id := props[1].ID

	rec := props[1]
	rec.Type = "number"
	updated := Update(props, 1, rec)

	assert.Equal(t, id, updated[1].ID)
	assert.Equal(t, "number", updated[1].Type)
	assert.Equal(t, "", props[1].Type, "input must not change")
	assert.Equal(t, []string{"a", "b"}, names(updated))
}

func TestUpdate_Panics(t *testing.T) {
	props := Add([]domain.PropDefinition(nil), newProp("a"))

	tests := []struct {
		name  string
		index int
		rec   domain.PropDefinition
	}{
		{"negative index", -1, props[0]},
		{"index past end", 1, props[0]},
		{"changed id", 0, domain.PropDefinition{ID: "other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Update(props, tt.index, tt.rec) })
		})
	}
}

func TestRemove_ShiftsLeft(t *testing.T) {
	props := Add(Add(Add([]domain.PropDefinition(nil), newProp("p1")), newProp("p2")), newProp("p3"))
	ids := []string{props[0].ID, props[2].ID}

	out := Remove(props, 1)

	assert.Equal(t, []string{"p1", "p3"}, names(out))
	assert.Equal(t, ids, []string{out[0].ID, out[1].ID})
	assert.Len(t, props, 3, "input must not change")
	assert.Equal(t, "p2", props[1].Name)
}

func TestRemove_Panics(t *testing.T) {
	assert.Panics(t, func() { Remove([]domain.SideEffect{}, 0) })
}

func TestIndexOf(t *testing.T) {
	props := Add(Add([]domain.PropDefinition(nil), newProp("a")), newProp("b"))

	assert.Equal(t, 1, IndexOf(props, props[1].ID))
	assert.Equal(t, -1, IndexOf(props, "missing"))
	assert.Equal(t, -1, IndexOf([]domain.PropDefinition(nil), "missing"))
}

func TestNewID_IsUUID(t *testing.T) {
	id := NewID()

	assert.Len(t, id, 36)
	assert.NotEqual(t, id, NewID())
}
