package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSections, "sections"},
		{ViewForm, "form"},
		{ViewRecords, "records"},
		{ViewPrompt, "prompt"},
		{ViewBuild, "build"},
		{ViewDrafts, "drafts"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for v := ViewMenu; v <= ViewHelp; v++ {
		name := v.String()
		assert.NotEqual(t, "unknown", name)
		assert.False(t, seen[name], "duplicate view name %s", name)
		seen[name] = true
	}
}
