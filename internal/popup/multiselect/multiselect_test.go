package multiselect

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func ident(key string) string { return key }

func newModel(names ...string) Model {
	m := New("searchTools", ident)
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{Name: name, IsPublic: true}
	}
	m.SetCandidates(items)
	m.Focus()
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: key})
	return m
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestFiltered_CaseInsensitiveSubstring(t *testing.T) {
	m := newModel("ChatGPT", "Claude", "Gemini", "Copilot")
	m = typeText(m, "cL")

	require.Equal(t, []string{"Claude"}, names(m.Filtered()))
}

func TestFiltered_CapsAtTen(t *testing.T) {
	var all []string
	for i := 0; i < 15; i++ {
		all = append(all, fmt.Sprintf("tool-%02d", i))
	}
	m := newModel(all...)

	require.Len(t, m.Filtered(), 10)
}

func TestFiltered_ExcludesSelected(t *testing.T) {
	m := newModel("ChatGPT", "Claude")
	m.Select("Claude")

	require.Equal(t, []string{"ChatGPT"}, names(m.Filtered()))

	// Deselecting restores eligibility.
	m.Remove("Claude")
	require.Equal(t, []string{"ChatGPT", "Claude"}, names(m.Filtered()))
}

func TestEnter_SelectsExactMatchInsteadOfCreating(t *testing.T) {
	m := newModel("ChatGPT", "Claude")
	m = typeText(m, "claude")
	m = press(m, tea.KeyEnter)

	selected := m.Selected()
	require.Len(t, selected, 1)
	require.Equal(t, "Claude", selected[0].Name, "canonical casing wins")
	require.False(t, selected[0].IsNew, "no duplicate with isNew")
	require.Empty(t, m.input.Value(), "filter cleared after enter")
}

func TestEnter_CreatesNewItem(t *testing.T) {
	m := newModel("ChatGPT")
	m = typeText(m, "Mistral")
	m = press(m, tea.KeyEnter)

	selected := m.Selected()
	require.Len(t, selected, 1)
	require.Equal(t, "Mistral", selected[0].Name)
	require.True(t, selected[0].IsNew)
	require.False(t, selected[0].IsPublic, "inline-created items are private")
}

func TestEnter_AlreadySelectedNameIsNoop(t *testing.T) {
	m := newModel("ChatGPT")
	m.Select("ChatGPT")
	m = typeText(m, "chatgpt")
	m = press(m, tea.KeyEnter)

	require.Len(t, m.Selected(), 1)
	require.Empty(t, m.input.Value())
}

func TestEnter_HighlightedRowWins(t *testing.T) {
	m := newModel("ChatGPT", "Claude", "Copilot")
	m = typeText(m, "c")
	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyEnter)

	require.Equal(t, []string{"Claude"}, m.Names())
}

func TestBackspace_EmptyFilterPopsLastSelected(t *testing.T) {
	m := newModel("ChatGPT", "Claude")
	m.Select("ChatGPT")
	m.Select("Claude")

	m = press(m, tea.KeyBackspace)

	require.Equal(t, []string{"ChatGPT"}, m.Names(), "only the most recent goes")
}

func TestBackspace_NonEmptyFilterEditsText(t *testing.T) {
	m := newModel("ChatGPT")
	m.Select("ChatGPT")
	m = typeText(m, "ab")
	m = press(m, tea.KeyBackspace)

	require.Equal(t, "a", m.input.Value())
	require.Len(t, m.Selected(), 1, "selection untouched while editing")
}

func TestRemove_ByNameMatch(t *testing.T) {
	m := newModel("ChatGPT", "Claude", "Gemini")
	m.Select("ChatGPT")
	m.Select("Claude")
	m.Select("Gemini")

	m.Remove("Claude")

	require.Equal(t, []string{"ChatGPT", "Gemini"}, m.Names())
}

func TestCanCreate(t *testing.T) {
	m := newModel("ChatGPT")

	require.False(t, m.CanCreate(), "empty filter offers nothing")

	m = typeText(m, "chatgpt")
	require.False(t, m.CanCreate(), "exact candidate match, even case-folded")

	m.input.SetValue("Mistral")
	require.True(t, m.CanCreate())

	m.Select("Mistral")
	require.False(t, m.CanCreate(), "already selected")
}

func TestFocusBlur_ControlsDropdown(t *testing.T) {
	m := New("searchTools", ident)
	m.SetCandidates([]Item{{Name: "ChatGPT", IsPublic: true}})

	require.False(t, m.Focused())
	m.Focus()
	require.True(t, m.Focused())
	m.Blur()
	require.False(t, m.Focused())
}

func TestSelectionOrderIsPreserved(t *testing.T) {
	m := newModel("b", "a", "c")
	m.Select("c")
	m.Select("a")
	m.Select("b")

	require.Equal(t, []string{"c", "a", "b"}, m.Names())
}
