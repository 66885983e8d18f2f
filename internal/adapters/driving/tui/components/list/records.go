// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
)

// RecordList displays the records of one document list.
type RecordList struct {
	items    []domain.ListItem
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &RecordList{styles: s, width: 80, height: 10}
}

// Update handles list navigation messages.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *RecordList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render("No entries yet. Press [a] to add one.")
	}

	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (r *RecordList) renderItem(index int) string {
	label := r.items[index].Label()
	maxLen := r.width - 6
	if maxLen < 10 {
		maxLen = 10
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("> %d. %s", index+1, label))
	}
	return r.styles.Normal.Render(fmt.Sprintf("  %d. %s", index+1, label))
}

// SetItems replaces the records, keeping the cursor in range.
func (r *RecordList) SetItems(items []domain.ListItem) {
	r.items = items
	if r.selected >= len(items) {
		r.selected = max(len(items)-1, 0)
	}
}

// Selected returns the index under the cursor.
func (r *RecordList) Selected() int {
	return r.selected
}

// SelectedItem returns the record under the cursor, or nil if the list is empty.
func (r *RecordList) SelectedItem() domain.ListItem {
	if r.selected < 0 || r.selected >= len(r.items) {
		return nil
	}
	return r.items[r.selected]
}

// MoveUp moves selection up.
func (r *RecordList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RecordList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of records.
func (r *RecordList) Count() int {
	return len(r.items)
}
