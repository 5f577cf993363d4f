// Package multiselect is the picker used for tools and tags: a filter
// field over a remote-fetched candidate list, with inline creation of
// items that do not exist yet. Candidates stay in one canonical list;
// the selection is an ordered set of name keys, so an item never lives
// in two lists at once.
package multiselect

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// maxVisible caps the dropdown at ten filtered candidates, no paging.
const maxVisible = 10

// Item is a selectable tool or tag. IsNew marks an item created inline
// that does not exist remotely until the form is submitted.
type Item struct {
	Name     string
	IsPublic bool
	IsNew    bool
}

var (
	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	badgeStyle     = lipgloss.NewStyle().Faint(true)
)

// Model is one picker instance. Two of them (tools, tags) share this
// implementation, parameterized only by labels.
type Model struct {
	input textinput.Model
	t     func(key string) string

	candidates []Item
	selected   []string        // ordered name keys, oldest first
	created    map[string]Item // inline-created items by name

	focused bool
	cursor  int // highlighted filtered row, -1 = none
}

// New creates a picker. placeholderKey is the translation key for the
// filter field placeholder ("searchTools", "searchTags").
func New(placeholderKey string, t func(key string) string) Model {
	ti := textinput.New()
	ti.Placeholder = t(placeholderKey)
	ti.Prompt = ""
	ti.Width = 34
	return Model{
		input:   ti,
		t:       t,
		created: make(map[string]Item),
		cursor:  -1,
	}
}

// SetCandidates replaces the candidate list, keeping the current
// selection. Selected names that no longer resolve to a candidate stay
// selected as inline-created items.
func (m *Model) SetCandidates(items []Item) {
	m.candidates = items
	m.cursor = -1
}

// Reset clears the selection and filter.
func (m *Model) Reset() {
	m.selected = nil
	m.created = make(map[string]Item)
	m.input.SetValue("")
	m.cursor = -1
}

// Focus opens the dropdown and gives the filter field focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur closes the dropdown, the analogue of clicking outside the
// control.
func (m *Model) Blur() {
	m.focused = false
	m.cursor = -1
	m.input.Blur()
}

// Focused reports whether the dropdown is open.
func (m *Model) Focused() bool { return m.focused }

// Filtered returns the candidates matching the filter text: a
// case-insensitive substring match on the name, minus everything
// already selected, capped at ten entries.
func (m *Model) Filtered() []Item {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))

	var out []Item
	for _, item := range m.candidates {
		if m.isSelected(item.Name) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
		if len(out) == maxVisible {
			break
		}
	}
	return out
}

// CanCreate reports whether the create-new affordance applies: the
// trimmed filter is non-empty and matches no candidate or selected
// item exactly (case-insensitive).
func (m *Model) CanCreate() bool {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return false
	}
	for _, item := range m.candidates {
		if strings.EqualFold(item.Name, text) {
			return false
		}
	}
	return !m.isSelected(text)
}

// Select adds the named item to the selection. A name matching an
// existing candidate selects that candidate; anything else becomes an
// inline-created item with is_public false. Selecting a name twice is
// a no-op.
func (m *Model) Select(name string) {
	name = strings.TrimSpace(name)
	if name == "" || m.isSelected(name) {
		return
	}
	for _, item := range m.candidates {
		if strings.EqualFold(item.Name, name) {
			m.selected = append(m.selected, item.Name)
			return
		}
	}
	m.created[name] = Item{Name: name, IsNew: true}
	m.selected = append(m.selected, name)
}

// Remove deselects the named item; a deselected candidate becomes
// eligible for the dropdown again.
func (m *Model) Remove(name string) {
	m.selected = lo.Reject(m.selected, func(key string, _ int) bool {
		return strings.EqualFold(key, name)
	})
	delete(m.created, name)
}

// PopLast removes the most recently selected item.
func (m *Model) PopLast() {
	if len(m.selected) == 0 {
		return
	}
	last := m.selected[len(m.selected)-1]
	m.selected = m.selected[:len(m.selected)-1]
	delete(m.created, last)
}

// Selected returns the selected items in selection order.
func (m *Model) Selected() []Item {
	return lo.Map(m.selected, func(key string, _ int) Item {
		if item, ok := m.created[key]; ok {
			return item
		}
		for _, item := range m.candidates {
			if strings.EqualFold(item.Name, key) {
				return item
			}
		}
		return Item{Name: key, IsNew: true}
	})
}

// Names returns the selected names for submission; the public and new
// markers are dropped, the server owns those.
func (m *Model) Names() []string {
	return lo.Map(m.Selected(), func(item Item, _ int) string {
		return item.Name
	})
}

func (m *Model) isSelected(name string) bool {
	return lo.SomeBy(m.selected, func(key string) bool {
		return strings.EqualFold(key, name)
	})
}

// Update handles key input while the picker has focus.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "enter":
		m.confirm()
		return m, nil

	case "backspace":
		if strings.TrimSpace(m.input.Value()) == "" {
			m.PopLast()
			return m, nil
		}

	case "up":
		if m.cursor > -1 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.Filtered())-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.cursor = -1
	return m, cmd
}

// confirm applies the Enter rule: a highlighted row wins; otherwise an
// exact candidate match is selected over creating a duplicate, and
// anything genuinely new is created. The filter is cleared either way.
func (m *Model) confirm() {
	filtered := m.Filtered()
	if m.cursor >= 0 && m.cursor < len(filtered) {
		m.Select(filtered[m.cursor].Name)
	} else if text := strings.TrimSpace(m.input.Value()); text != "" {
		m.Select(text)
	}
	m.input.SetValue("")
	m.cursor = -1
}

// View renders the chips, the filter field, and (when focused) the
// dropdown.
func (m Model) View() string {
	var b strings.Builder

	if chips := m.Selected(); len(chips) > 0 {
		parts := lo.Map(chips, func(item Item, _ int) string {
			label := item.Name
			if item.IsNew {
				label += " " + badgeStyle.Render("("+m.t("create")+")")
			}
			return chipStyle.Render(label + " ✕")
		})
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())

	if !m.focused {
		return b.String()
	}
	b.WriteString("\n")

	filtered := m.Filtered()
	for i, item := range filtered {
		prefix := "  "
		if i == m.cursor {
			prefix = "▶ "
		}
		badge := m.t("private")
		if item.IsPublic {
			badge = m.t("public")
		}
		line := prefix + item.Name + " " + badgeStyle.Render("["+badge+"]")
		if i == m.cursor {
			b.WriteString(highlightStyle.Render(line))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.CanCreate() {
		b.WriteString(dimStyle.Render("+ " + m.t("create") + " “" + strings.TrimSpace(m.input.Value()) + "”"))
		b.WriteString("\n")
	} else if len(filtered) == 0 {
		b.WriteString(dimStyle.Render(m.t("noItemsFound")))
		b.WriteString("\n")
	}

	return b.String()
}
