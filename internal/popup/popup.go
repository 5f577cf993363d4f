// Package popup is the short-lived session UI: login, the prompt form
// with the tools and tags pickers, and settings. A popup session holds
// no durable state of its own; everything that must survive it lives
// in the store.
package popup

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/auth"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/locale"
	"github.com/stefankummer/promptpocket/internal/page"
	"github.com/stefankummer/promptpocket/internal/popup/multiselect"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

// Client is the slice of the API surface a popup session uses.
type Client interface {
	GetUser(ctx context.Context) (*api.User, error)
	ListTools(ctx context.Context) ([]api.Item, error)
	ListTags(ctx context.Context) ([]api.Item, error)
	CreatePrompt(ctx context.Context, p api.PromptCreate) error
}

// Session carries the process-wide collaborators into one popup
// lifetime. A new Session is built per popup open and discarded on
// close.
type Session struct {
	Store  *store.Store
	Auth   *auth.Manager
	Router *bus.Router

	// NewClient builds the API client for an endpoint and token.
	// Defaults to the real client.
	NewClient func(endpoint, token string) Client

	// ReadSelection resolves the current selection for the auto-fill
	// path. Defaults to the clipboard.
	ReadSelection func() (string, error)
}

type view int

const (
	viewLogin view = iota
	viewMain
	viewSettings
)

// Fields of the main form, in tab order.
const (
	focusTitle = iota
	focusContent
	focusDescription
	focusTools
	focusTags
	focusNotes
	focusStatus
	focusPublic
	focusCount
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// Model is the Bubble Tea model for one popup session.
type Model struct {
	session Session
	client  Client
	tr      *locale.Translator
	cfg     settings.Settings

	view    view
	user    *api.User
	loading bool
	toast   string
	kind    toastKind

	// login
	keyInput textinput.Model

	// main form
	title       textinput.Model
	content     textarea.Model
	description textinput.Model
	notes       textarea.Model
	status      settings.Status
	makePublic  bool
	tools       multiselect.Model
	tags        multiselect.Model
	focus       int
	preview     bool

	// settings form
	endpointInput textinput.Model
	formStatus    settings.Status
	formLanguage  string
	formTheme     settings.Theme
	formAutoGet   bool
	confirmClear  bool
	settingsFocus int
}

// New builds a popup session model. Settings and language are read
// once at open; a failed read falls back to defaults.
func New(s Session) Model {
	if s.NewClient == nil {
		s.NewClient = func(endpoint, token string) Client {
			return api.New(endpoint, token)
		}
	}
	if s.ReadSelection == nil {
		s.ReadSelection = page.ReadSelection
	}

	cfg, err := settings.Load(s.Store)
	if err != nil {
		cfg = settings.Defaults()
	}
	tr := locale.New(cfg.Language)

	m := Model{
		session: s,
		cfg:     cfg,
		tr:      tr,
		status:  cfg.DefaultStatus,
	}

	m.keyInput = textinput.New()
	m.keyInput.Placeholder = tr.T("apiKeyPlaceholder")
	m.keyInput.EchoMode = textinput.EchoPassword
	m.keyInput.Width = 44

	m.title = textinput.New()
	m.title.Placeholder = tr.T("titlePlaceholder")
	m.title.Width = 44

	m.content = textarea.New()
	m.content.Placeholder = tr.T("contentPlaceholder")
	m.content.SetWidth(44)
	m.content.SetHeight(5)

	m.description = textinput.New()
	m.description.Placeholder = tr.T("descriptionPlaceholder")
	m.description.Width = 44

	m.notes = textarea.New()
	m.notes.Placeholder = tr.T("notesPlaceholder")
	m.notes.SetWidth(44)
	m.notes.SetHeight(3)

	m.tools = multiselect.New("searchTools", tr.T)
	m.tags = multiselect.New("searchTags", tr.T)

	m.endpointInput = textinput.New()
	m.endpointInput.Width = 44

	// The session opens on the login view; with a stored token the
	// silent revalidation in Init promotes it to the form.
	m.view = viewLogin
	m.keyInput.Focus()
	if s.Auth.HasToken() {
		m.loading = true
	}

	return m
}

// Init revalidates a stored token silently before showing the form;
// without one the login view is already up.
func (m Model) Init() tea.Cmd {
	if m.session.Auth.HasToken() {
		return m.checkAuth()
	}
	return textinput.Blink
}

// enterLogin returns to the login view and focuses the key field.
func (m *Model) enterLogin() tea.Cmd {
	m.view = viewLogin
	return m.keyInput.Focus()
}

// enterMain switches to the form view and loads its remote data: tools
// and tags in parallel, and the pending selection handoff.
func (m *Model) enterMain() tea.Cmd {
	m.view = viewMain
	m.loading = true
	m.focus = focusTitle
	m.status = m.cfg.DefaultStatus
	focusCmd := m.title.Focus()
	return tea.Batch(focusCmd, m.fetchCatalogs(), m.fetchPending())
}

// enterSettings copies the persisted settings into the form.
func (m *Model) enterSettings() tea.Cmd {
	m.view = viewSettings
	m.confirmClear = false
	m.settingsFocus = 0
	m.endpointInput.SetValue(m.cfg.APIEndpoint)
	m.formStatus = m.cfg.DefaultStatus
	m.formLanguage = m.tr.Lang()
	m.formTheme = m.cfg.Theme
	m.formAutoGet = m.cfg.AutoGetSelection
	return m.endpointInput.Focus()
}

// leaveSettings returns to whichever of login/main matches the auth
// state right now, not a remembered back-target.
func (m *Model) leaveSettings() tea.Cmd {
	if m.session.Auth.HasToken() {
		return m.enterMain()
	}
	return m.enterLogin()
}

// resetForm restores the form defaults after a successful submission.
func (m *Model) resetForm() {
	m.title.SetValue("")
	m.content.SetValue("")
	m.description.SetValue("")
	m.notes.SetValue("")
	m.status = m.cfg.DefaultStatus
	m.makePublic = false
	m.preview = false
	m.tools.Reset()
	m.tags.Reset()
}

func (m *Model) showToast(text string, kind toastKind) {
	m.toast = text
	m.kind = kind
}

// T translates a message key into the session language.
func (m Model) T(key string) string {
	return m.tr.T(key)
}
