package popup

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

// None of these operations are cancellable once started; closing the
// popup mid-request lets the request finish (or fail) unobserved. They
// therefore run on a background context.

type authCheckedMsg struct {
	user *api.User
	err  error
}

type loginMsg struct {
	user *api.User
	key  string
	err  error
}

type catalogsMsg struct {
	tools []api.Item
	tags  []api.Item
	err   error
}

type pendingMsg struct {
	resp bus.PendingSelectionResponse
}

type selectionMsg struct {
	text string
}

type submitMsg struct {
	err error
}

type clearedMsg struct {
	err error
}

// newClient builds a client for the current endpoint and the stored
// token.
func (m *Model) newClient() Client {
	token, _, _ := m.session.Auth.Token()
	return m.session.NewClient(m.cfg.APIEndpoint, token)
}

// checkAuth silently revalidates the stored token.
func (m *Model) checkAuth() tea.Cmd {
	client := m.newClient()
	return func() tea.Msg {
		user, err := client.GetUser(context.Background())
		return authCheckedMsg{user: user, err: err}
	}
}

// login validates a freshly entered key before storing it.
func (m *Model) login(key string) tea.Cmd {
	client := m.session.NewClient(m.cfg.APIEndpoint, key)
	return func() tea.Msg {
		user, err := client.GetUser(context.Background())
		return loginMsg{user: user, key: key, err: err}
	}
}

// fetchCatalogs loads tools and tags in parallel; the first failure
// wins.
func (m *Model) fetchCatalogs() tea.Cmd {
	client := m.client
	if client == nil {
		client = m.newClient()
	}
	return func() tea.Msg {
		var (
			wg       sync.WaitGroup
			msg      catalogsMsg
			toolsErr error
			tagsErr  error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			msg.tools, toolsErr = client.ListTools(context.Background())
		}()
		go func() {
			defer wg.Done()
			msg.tags, tagsErr = client.ListTags(context.Background())
		}()
		wg.Wait()

		if toolsErr != nil {
			msg.err = toolsErr
		} else if tagsErr != nil {
			msg.err = tagsErr
		}
		return msg
	}
}

// fetchPending consumes the pending selection handoff, if one is
// waiting. The read clears it; there is no second chance.
func (m *Model) fetchPending() tea.Cmd {
	router := m.session.Router
	return func() tea.Msg {
		var resp bus.PendingSelectionResponse
		raw, err := router.Request(context.Background(), bus.TypeGetPendingSelection, nil)
		if err == nil && raw != nil {
			_ = json.Unmarshal(raw, &resp)
		}
		return pendingMsg{resp: resp}
	}
}

// fetchSelection pulls the current selection for auto-fill.
// Best-effort: failures read as empty.
func (m *Model) fetchSelection() tea.Cmd {
	read := m.session.ReadSelection
	return func() tea.Msg {
		text, err := read()
		if err != nil {
			text = ""
		}
		return selectionMsg{text: strings.TrimSpace(text)}
	}
}

// submit sends the create request built from the current form.
func (m *Model) submit(p api.PromptCreate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return submitMsg{err: client.CreatePrompt(context.Background(), p)}
	}
}

// clearAll wipes the token and both store partitions.
func (m *Model) clearAll() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if err := s.Auth.ClearToken(); err != nil {
			return clearedMsg{err: err}
		}
		if err := s.Store.Clear(store.PartitionLocal); err != nil {
			return clearedMsg{err: err}
		}
		if err := s.Store.Clear(store.PartitionSynced); err != nil {
			return clearedMsg{err: err}
		}
		return clearedMsg{}
	}
}

// buildCreate assembles the request body from the form. Optional
// fields are dropped when empty; the pickers contribute bare names.
func (m *Model) buildCreate() api.PromptCreate {
	p := api.PromptCreate{
		Title:    strings.TrimSpace(m.title.Value()),
		Content:  strings.TrimSpace(m.content.Value()),
		Status:   string(m.status),
		IsPublic: m.makePublic,
	}
	if d := strings.TrimSpace(m.description.Value()); d != "" {
		p.Description = d
	}
	if n := strings.TrimSpace(m.notes.Value()); n != "" {
		p.Notes = n
	}
	if names := m.tools.Names(); len(names) > 0 {
		p.AITools = names
	}
	if names := m.tags.Names(); len(names) > 0 {
		p.Tags = names
	}
	return p
}

// formSettings assembles a Settings record from the settings form.
func (m *Model) formSettings() settings.Settings {
	return settings.Settings{
		APIEndpoint:      m.endpointInput.Value(),
		DefaultStatus:    m.formStatus,
		AutoGetSelection: m.formAutoGet,
		Language:         m.formLanguage,
		Theme:            m.formTheme,
	}
}
