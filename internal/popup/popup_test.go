package popup

import (
	"context"
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/auth"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/popup/multiselect"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

type fakeClient struct {
	user      *api.User
	userErr   error
	tools     []api.Item
	tags      []api.Item
	listErr   error
	created   []api.PromptCreate
	createErr error

	lastToken string
}

func (f *fakeClient) GetUser(context.Context) (*api.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user == nil {
		return &api.User{Name: "Tester"}, nil
	}
	return f.user, nil
}

func (f *fakeClient) ListTools(context.Context) ([]api.Item, error) {
	return f.tools, f.listErr
}

func (f *fakeClient) ListTags(context.Context) ([]api.Item, error) {
	return f.tags, f.listErr
}

func (f *fakeClient) CreatePrompt(_ context.Context, p api.PromptCreate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

type harness struct {
	store  *store.Store
	auth   *auth.Manager
	router *bus.Router
	client *fakeClient

	pending   bus.PendingSelectionResponse
	selection string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	keyring.MockInit()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	h := &harness{
		store:  s,
		auth:   auth.NewManager(s),
		router: bus.NewRouter(),
		client: &fakeClient{
			tools: []api.Item{{Name: "ChatGPT", IsPublic: true}, {Name: "Claude", IsPublic: true}},
			tags:  []api.Item{{Name: "writing", IsPublic: true}},
		},
	}
	h.router.Handle(bus.TypeGetPendingSelection, func(context.Context, json.RawMessage) (any, error) {
		resp := h.pending
		h.pending = bus.PendingSelectionResponse{}
		return resp, nil
	})
	return h
}

func (h *harness) session() Session {
	return Session{
		Store:  h.store,
		Auth:   h.auth,
		Router: h.router,
		NewClient: func(endpoint, token string) Client {
			h.client.lastToken = token
			return h.client
		},
		ReadSelection: func() (string, error) { return h.selection, nil },
	}
}

// run executes a command chain, feeding each message back into Update
// until the model settles.
func run(m tea.Model, cmd tea.Cmd) tea.Model {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = run(m, c)
			}
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func key(m tea.Model, k tea.KeyMsg) tea.Model {
	next, cmd := m.Update(k)
	return run(next, cmd)
}

func keys(m tea.Model, ks ...tea.KeyMsg) tea.Model {
	for _, k := range ks {
		m = key(m, k)
	}
	return m
}

func ctrl(name string) tea.KeyMsg {
	switch name {
	case "s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	}
	panic("unknown ctrl key " + name)
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func start(t *testing.T, h *harness) Model {
	t.Helper()
	m := New(h.session())
	return run(m, m.Init()).(Model)
}

func TestStart_NoTokenShowsLogin(t *testing.T) {
	h := newHarness(t)
	m := start(t, h)

	require.Equal(t, viewLogin, m.view)
}

func TestStart_ValidTokenGoesToMain(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))

	m := start(t, h)

	require.Equal(t, viewMain, m.view)
	require.Equal(t, "ppk_valid", h.client.lastToken)
	require.Equal(t, []string{"ChatGPT", "Claude"}, namesOf(m.tools.Filtered()))
}

func TestStart_ExpiredTokenFallsBackToLogin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_stale"))
	h.client.userErr = errors.NewService(401, "Unauthenticated")

	m := start(t, h)

	require.Equal(t, viewLogin, m.view)
	require.False(t, h.auth.HasToken(), "stale token is dropped")
	require.Equal(t, m.T("sessionExpired"), m.toast)
}

func TestLogin_EmptyKeyRejected(t *testing.T) {
	h := newHarness(t)
	m := start(t, h)

	m = key(m, tea.KeyMsg{Type: tea.KeyEnter}).(Model)

	require.Equal(t, viewLogin, m.view)
	require.Equal(t, m.T("enterApiKey"), m.toast)
}

func TestLogin_InvalidKeyRejected(t *testing.T) {
	h := newHarness(t)
	h.client.userErr = errors.NewService(401, "Unauthenticated")
	m := start(t, h)

	m = keys(m, runes("ppk_bad"), tea.KeyMsg{Type: tea.KeyEnter}).(Model)

	require.Equal(t, viewLogin, m.view)
	require.False(t, h.auth.HasToken())
	require.Equal(t, m.T("invalidApiKey"), m.toast)
}

func TestLogin_ValidKeyStoredAndMainShown(t *testing.T) {
	h := newHarness(t)
	m := start(t, h)

	m = keys(m, runes("ppk_good"), tea.KeyMsg{Type: tea.KeyEnter}).(Model)

	require.Equal(t, viewMain, m.view)
	token, ok, err := h.auth.Token()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ppk_good", token)
}

func TestMain_PendingSelectionFillsContent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	h.pending = bus.PendingSelectionResponse{
		PendingSelection: "captured text",
		SourceURL:        "https://example.com",
	}

	m := start(t, h)

	require.Equal(t, "captured text", m.content.Value())
}

func TestMain_AutoGetSelectionWhenNoPending(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	h.selection = "current selection"

	m := start(t, h)

	require.Equal(t, "current selection", m.content.Value())
}

func TestMain_NoAutoGetWhenDisabled(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	h.selection = "current selection"
	cfg := settings.Defaults()
	cfg.AutoGetSelection = false
	_, err := settings.Save(h.store, cfg)
	require.NoError(t, err)

	m := start(t, h)

	require.Empty(t, m.content.Value())
}

func TestSubmit_RequiresTitleAndContent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m := start(t, h)

	m = key(m, ctrl("s")).(Model)

	require.Empty(t, h.client.created, "validation happens before any network call")
	require.Equal(t, m.T("titleContentRequired"), m.toast)
}

func TestSubmit_SendsFormAndResets(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m := start(t, h)

	m.title.SetValue("  My prompt  ")
	m.content.SetValue("Do the thing.")
	m.notes.SetValue("private note")
	m.tools.Select("Claude")
	m.tags.Select("brand-new")
	m.makePublic = true

	m = key(m, ctrl("s")).(Model)

	require.Len(t, h.client.created, 1)
	created := h.client.created[0]
	require.Equal(t, "My prompt", created.Title)
	require.Equal(t, "Do the thing.", created.Content)
	require.Equal(t, "published", created.Status)
	require.True(t, created.IsPublic)
	require.Empty(t, created.Description, "empty optional fields are omitted")
	require.Equal(t, "private note", created.Notes)
	require.Equal(t, []string{"Claude"}, created.AITools)
	require.Equal(t, []string{"brand-new"}, created.Tags)

	// Success resets the form.
	require.Empty(t, m.title.Value())
	require.Empty(t, m.content.Value())
	require.Empty(t, m.tools.Names())
	require.Equal(t, m.T("promptSaved"), m.toast)
}

func TestSubmit_FailurePreservesForm(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m := start(t, h)

	m.title.SetValue("My prompt")
	m.content.SetValue("Do the thing.")
	h.client.createErr = errors.NewService(422, "Title already taken")

	m = key(m, ctrl("s")).(Model)

	require.Equal(t, "Title already taken", m.toast)
	require.Equal(t, "My prompt", m.title.Value(), "form state survives a failed submit")
	require.Equal(t, "Do the thing.", m.content.Value())
}

func TestSettings_SaveStripsTrailingSlash(t *testing.T) {
	h := newHarness(t)
	m := start(t, h)

	m = key(m, ctrl("o")).(Model)
	require.Equal(t, viewSettings, m.view)

	m.endpointInput.SetValue("https://x.test/api/")
	m = key(m, ctrl("s")).(Model)

	require.Equal(t, m.T("settingsSaved"), m.toast)
	require.Equal(t, "https://x.test/api", m.cfg.APIEndpoint)

	loaded, err := settings.Load(h.store)
	require.NoError(t, err)
	require.Equal(t, "https://x.test/api", loaded.APIEndpoint)
}

func TestSettings_ReturnTargetFollowsAuthState(t *testing.T) {
	h := newHarness(t)
	m := start(t, h)

	m = key(m, ctrl("o")).(Model)
	m = key(m, tea.KeyMsg{Type: tea.KeyEsc}).(Model)
	require.Equal(t, viewLogin, m.view, "no token returns to login")

	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m = key(m, ctrl("o")).(Model)
	m = key(m, tea.KeyMsg{Type: tea.KeyEsc}).(Model)
	require.Equal(t, viewMain, m.view, "a token returns to the form")
}

func TestSettings_ClearAllNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m := start(t, h)
	m = key(m, ctrl("o")).(Model)

	// Declining leaves everything in place.
	m = keys(m, ctrl("d"), runes("n")).(Model)
	require.True(t, h.auth.HasToken())
	require.Equal(t, viewSettings, m.view)

	// Confirming wipes token and settings and returns to login.
	_, err := settings.Save(h.store, settings.Defaults())
	require.NoError(t, err)
	m = keys(m, ctrl("d"), runes("y")).(Model)

	require.Equal(t, viewLogin, m.view)
	require.False(t, h.auth.HasToken())
	_, ok, err := h.store.Get(store.PartitionSynced, store.KeySettings)
	require.NoError(t, err)
	require.False(t, ok, "synced partition wiped")
	require.Equal(t, m.T("dataCleaned"), m.toast)
}

func TestMain_LogoutReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.auth.SetToken("ppk_valid"))
	m := start(t, h)

	m = key(m, ctrl("l")).(Model)

	require.Equal(t, viewLogin, m.view)
	require.False(t, h.auth.HasToken())
	require.Equal(t, m.T("loggedOut"), m.toast)
}

func namesOf(items []multiselect.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
