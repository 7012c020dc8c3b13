package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// filterDraft is the uncommitted value of an open filter editor
type filterDraft struct {
	value any
}

// ColumnFilter is the per-column filter shell. It is Closed until Open
// creates a draft, and returns to Closed only through Save or Clear.
type ColumnFilter[T any] struct {
	column     *grid.Column[T]
	descriptor *filter.Descriptor
	editor     filter.Editor
	draft      *filterDraft

	Keys  GridKeyMap
	Theme theme.Theme
	Width int
}

// NewColumnFilter returns the filter shell for a column, or nil when the
// column cannot be filtered or its filter carries no editor
func NewColumnFilter[T any](col *grid.Column[T], th theme.Theme) *ColumnFilter[T] {
	if col == nil || !col.GetCanFilter() {
		return nil
	}
	d, ok := col.FilterFn().AsDescriptor()
	if !ok {
		return nil
	}
	return &ColumnFilter[T]{
		column:     col,
		descriptor: d,
		Keys:       DefaultGridKeyMap(),
		Theme:      th,
		Width:      40,
	}
}

// ColumnID returns the ID of the filtered column
func (f *ColumnFilter[T]) ColumnID() string { return f.column.ID() }

// IsOpen reports whether a draft exists
func (f *ColumnFilter[T]) IsOpen() bool { return f.draft != nil }

// Draft returns the staged value while open
func (f *ColumnFilter[T]) Draft() (any, bool) {
	if f.draft == nil {
		return nil, false
	}
	return f.draft.value, true
}

// Open creates the draft from the committed value, or from the filter's
// initial value when the column has none
func (f *ColumnFilter[T]) Open() {
	if f.draft != nil {
		return
	}
	value := f.column.GetFilterValue()
	if value == nil {
		value = f.descriptor.Init()
	}
	f.draft = &filterDraft{value: value}
	f.editor = f.descriptor.NewEditor()
}

// Edit replaces the draft value. Nothing is committed.
func (f *ColumnFilter[T]) Edit(value any) {
	if f.draft == nil {
		return
	}
	f.draft.value = value
}

// Save commits the draft and closes
func (f *ColumnFilter[T]) Save() {
	if f.draft == nil {
		return
	}
	value := f.draft.value
	f.close()
	f.column.SetFilterValue(models.Set(value))
}

// Clear removes the column's filter, discarding any staged edits, and closes
func (f *ColumnFilter[T]) Clear() {
	if f.draft == nil {
		return
	}
	f.close()
	f.column.SetFilterValue(models.Set[any](nil))
}

func (f *ColumnFilter[T]) close() {
	f.draft = nil
	f.editor = nil
}

// Update routes a message to the editor. Esc is swallowed while open.
func (f *ColumnFilter[T]) Update(msg tea.Msg) tea.Cmd {
	if f.draft == nil {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, f.Keys.SaveFilter):
			f.Save()
			return nil
		case key.Matches(keyMsg, f.Keys.ClearFilter):
			f.Clear()
			return nil
		case keyMsg.Type == tea.KeyEsc:
			return nil
		}
	}

	return f.editor.Update(msg, f.draft.value, f.Edit)
}

// View renders the filter popover
func (f *ColumnFilter[T]) View() string {
	if f.draft == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(f.Theme.TableHeader).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(f.Theme.Muted).
		Italic(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.Theme.BorderFocused).
		Padding(0, 1).
		Width(f.Width)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter: " + f.column.Header()))
	b.WriteString("\n")
	b.WriteString(f.editor.View(f.draft.value))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: apply │ Ctrl+R: clear"))

	return boxStyle.Render(b.String())
}
