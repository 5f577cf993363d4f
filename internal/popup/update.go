package popup

import (
	stderrors "errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/locale"
	"github.com/stefankummer/promptpocket/internal/popup/multiselect"
	"github.com/stefankummer/promptpocket/internal/settings"
)

// Update drives the loginView -> mainView <-> settingsView machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewMain:
			return m.updateMain(msg)
		case viewSettings:
			return m.updateSettings(msg)
		}

	case authCheckedMsg:
		m.loading = false
		if msg.err != nil {
			// Stored token no longer valid: drop it and ask again.
			_ = m.session.Auth.ClearToken()
			m.showToast(m.T("sessionExpired"), toastError)
			return m, m.enterLogin()
		}
		m.user = msg.user
		m.client = m.newClient()
		return m, m.enterMain()

	case loginMsg:
		m.loading = false
		if msg.err != nil {
			m.showToast(m.T("invalidApiKey"), toastError)
			return m, nil
		}
		if err := m.session.Auth.SetToken(msg.key); err != nil {
			m.showToast(err.Error(), toastError)
			return m, nil
		}
		m.user = msg.user
		m.client = m.newClient()
		m.keyInput.SetValue("")
		m.showToast(m.T("connectedSuccess"), toastSuccess)
		return m, m.enterMain()

	case catalogsMsg:
		m.loading = false
		if msg.err != nil {
			m.showToast(m.T("failedToLoad"), toastError)
			return m, nil
		}
		m.tools.SetCandidates(toPickerItems(msg.tools))
		m.tags.SetCandidates(toPickerItems(msg.tags))
		return m, nil

	case pendingMsg:
		if msg.resp.PendingSelection != "" {
			m.content.SetValue(msg.resp.PendingSelection)
			return m, nil
		}
		if m.cfg.AutoGetSelection {
			return m, m.fetchSelection()
		}
		return m, nil

	case selectionMsg:
		if msg.text != "" {
			m.content.SetValue(msg.text)
		}
		return m, nil

	case submitMsg:
		m.loading = false
		if msg.err != nil {
			// The form keeps its state so the user can retry.
			m.showToast(errText(msg.err, m.T("failedToSave")), toastError)
			return m, nil
		}
		m.showToast(m.T("promptSaved"), toastSuccess)
		m.resetForm()
		// Refetch so inline-created tools and tags come back with
		// server-assigned identity.
		m.loading = true
		return m, m.fetchCatalogs()

	case clearedMsg:
		if msg.err != nil {
			m.showToast(errText(msg.err, m.T("failedToSave")), toastError)
			return m, nil
		}
		m.cfg = settings.Defaults()
		m.tr = locale.New("")
		m.user = nil
		m.client = nil
		m.resetForm()
		m.showToast(m.T("dataCleaned"), toastSuccess)
		return m, m.enterLogin()
	}

	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			m.showToast(m.T("enterApiKey"), toastError)
			return m, nil
		}
		m.loading = true
		return m, m.login(key)

	case "ctrl+o":
		return m, m.enterSettings()
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)

	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case "esc":
		// Close an open picker dropdown; the analogue of clicking
		// outside it.
		if m.focus == focusTools {
			m.tools.Blur()
		}
		if m.focus == focusTags {
			m.tags.Blur()
		}
		return m, nil

	case "ctrl+s":
		if strings.TrimSpace(m.title.Value()) == "" || strings.TrimSpace(m.content.Value()) == "" {
			m.showToast(m.T("titleContentRequired"), toastError)
			return m, nil
		}
		m.loading = true
		return m, m.submit(m.buildCreate())

	case "ctrl+g":
		return m, m.fetchSelection()

	case "ctrl+p":
		m.preview = !m.preview
		return m, nil

	case "ctrl+o":
		return m, m.enterSettings()

	case "ctrl+l":
		if err := m.session.Auth.ClearToken(); err != nil {
			m.showToast(err.Error(), toastError)
			return m, nil
		}
		m.user = nil
		m.client = nil
		m.resetForm()
		m.showToast(m.T("loggedOut"), toastSuccess)
		return m, m.enterLogin()
	}

	return m.updateFocused(msg)
}

// updateFocused routes a key to whichever form field has focus.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
	case focusTools:
		m.tools, cmd = m.tools.Update(msg)
	case focusTags:
		m.tags, cmd = m.tags.Update(msg)
	case focusNotes:
		m.notes, cmd = m.notes.Update(msg)
	case focusStatus:
		if isToggleKey(msg) {
			if m.status == settings.StatusPublished {
				m.status = settings.StatusDraft
			} else {
				m.status = settings.StatusPublished
			}
		}
	case focusPublic:
		if isToggleKey(msg) {
			m.makePublic = !m.makePublic
		}
	}
	return m, cmd
}

// setFocus moves the form focus, blurring everything else.
func (m *Model) setFocus(target int) tea.Cmd {
	m.title.Blur()
	m.content.Blur()
	m.description.Blur()
	m.notes.Blur()
	m.tools.Blur()
	m.tags.Blur()

	m.focus = target
	switch target {
	case focusTitle:
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	case focusDescription:
		return m.description.Focus()
	case focusTools:
		return m.tools.Focus()
	case focusTags:
		return m.tags.Focus()
	case focusNotes:
		return m.notes.Focus()
	}
	return nil
}

// Settings form fields, in tab order.
const (
	settingEndpoint = iota
	settingStatus
	settingLanguage
	settingTheme
	settingAutoGet
	settingCount
)

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending clear-all confirmation swallows the next key.
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" {
			return m, m.clearAll()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, m.leaveSettings()

	case "tab":
		m.settingsFocus = (m.settingsFocus + 1) % settingCount
		if m.settingsFocus == settingEndpoint {
			return m, m.endpointInput.Focus()
		}
		m.endpointInput.Blur()
		return m, nil

	case "ctrl+s":
		saved, err := settings.Save(m.session.Store, m.formSettings())
		if err != nil {
			m.showToast(err.Error(), toastError)
			return m, nil
		}
		// Re-apply language and theme immediately, no reload.
		m.cfg = saved
		m.tr = locale.New(saved.Language)
		m.status = saved.DefaultStatus
		m.showToast(m.T("settingsSaved"), toastSuccess)
		return m, nil

	case "ctrl+d":
		m.confirmClear = true
		return m, nil
	}

	switch m.settingsFocus {
	case settingEndpoint:
		var cmd tea.Cmd
		m.endpointInput, cmd = m.endpointInput.Update(msg)
		return m, cmd
	case settingStatus:
		if isToggleKey(msg) {
			if m.formStatus == settings.StatusPublished {
				m.formStatus = settings.StatusDraft
			} else {
				m.formStatus = settings.StatusPublished
			}
		}
	case settingLanguage:
		if isToggleKey(msg) {
			m.formLanguage = nextLanguage(m.formLanguage)
		}
	case settingTheme:
		if isToggleKey(msg) {
			m.formTheme = nextTheme(m.formTheme)
		}
	case settingAutoGet:
		if isToggleKey(msg) {
			m.formAutoGet = !m.formAutoGet
		}
	}
	return m, nil
}

func isToggleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case " ", "space", "left", "right":
		return true
	}
	return false
}

func nextLanguage(current string) string {
	codes := locale.Supported()
	for i, code := range codes {
		if code == current {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}

func nextTheme(current settings.Theme) settings.Theme {
	switch current {
	case settings.ThemeSystem:
		return settings.ThemeLight
	case settings.ThemeLight:
		return settings.ThemeDark
	default:
		return settings.ThemeSystem
	}
}

// errText prefers the service's own message over the generic fallback.
func errText(err error, fallback string) string {
	var pErr *errors.PocketError
	if stderrors.As(err, &pErr) && pErr.Message != "" {
		return pErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// toPickerItems converts catalog entries into picker items.
func toPickerItems(items []api.Item) []multiselect.Item {
	out := make([]multiselect.Item, len(items))
	for i, item := range items {
		out[i] = multiselect.Item{Name: item.Name, IsPublic: item.IsPublic}
	}
	return out
}
