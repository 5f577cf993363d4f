// Package coordinator is the background save coordinator. It accepts
// save triggers from the capture menu, the quick-save shortcut, and
// popup sessions, performs the remote create, and makes sure the
// originating page hears about the outcome even when its receiver was
// not attached yet.
package coordinator

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/auth"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/page"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

// DefaultTitle is used when the content's first line is empty.
const DefaultTitle = "Quick Save"

// titleLimit is the longest title derived from content; longer first
// lines are cut to truncateAt runes plus an ellipsis.
const (
	titleLimit = 50
	truncateAt = 47
)

// ReadyPolicy governs the PROMPT_SAVED delivery retry: when direct
// delivery fails the page receiver is injected, the coordinator waits
// Backoff for it to come up, and the send is repeated Attempts times.
// The create request itself is never retried.
type ReadyPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultReadyPolicy is one resend after a 100ms injection grace.
var DefaultReadyPolicy = ReadyPolicy{Attempts: 1, Backoff: 100 * time.Millisecond}

// promptService is the slice of the API client the coordinator needs.
type promptService interface {
	CreatePrompt(ctx context.Context, p api.PromptCreate) error
}

// Config wires a Coordinator. Store, Auth, and Router are required;
// everything else has a working default.
type Config struct {
	Store  *store.Store
	Auth   *auth.Manager
	Router *bus.Router

	// Notifier receives user-facing save outcomes. Defaults to the
	// terminal notifier.
	Notifier Notifier

	// Translate resolves message keys to user-visible text. Defaults
	// to the identity function.
	Translate func(key string) string

	// OpenPopup asks the popup UI to open (unauthenticated quick-save,
	// capture handoff). Defaults to a no-op.
	OpenPopup func()

	// Inject attaches a fresh page receiver for the named page, the
	// analogue of injecting a content script. Defaults to attaching a
	// toast receiver writing to stderr.
	Inject func(pg string) error

	// ReadSelection resolves the current selection for the shortcut
	// path. Defaults to the clipboard.
	ReadSelection func() (string, error)

	Policy ReadyPolicy
}

// Coordinator owns the save flows. It holds no per-request state; all
// durable state lives in the store so a restarted process picks up
// where the last one stopped.
type Coordinator struct {
	store         *store.Store
	auth          *auth.Manager
	router        *bus.Router
	notify        Notifier
	t             func(key string) string
	openPopup     func()
	inject        func(pg string) error
	readSelection func() (string, error)
	policy        ReadyPolicy

	// seams for tests
	newService func(endpoint, token string) promptService
	sleep      func(d time.Duration)
	logf       func(format string, args ...any)

	mu          sync.Mutex
	menuEnabled bool
	unwatch     func()
}

// New creates a Coordinator, registers its bus handlers, and starts
// watching the store for auth changes. Call Close when done.
func New(cfg Config) *Coordinator {
	c := &Coordinator{
		store:         cfg.Store,
		auth:          cfg.Auth,
		router:        cfg.Router,
		notify:        cfg.Notifier,
		t:             cfg.Translate,
		openPopup:     cfg.OpenPopup,
		inject:        cfg.Inject,
		readSelection: cfg.ReadSelection,
		policy:        cfg.Policy,
		newService: func(endpoint, token string) promptService {
			return api.New(endpoint, token)
		},
		sleep: time.Sleep,
		logf:  defaultLogf,
	}
	if c.notify == nil {
		c.notify = NewTerminalNotifier(os.Stderr)
	}
	if c.t == nil {
		c.t = func(key string) string { return key }
	}
	if c.openPopup == nil {
		c.openPopup = func() {}
	}
	if c.inject == nil {
		c.inject = func(pg string) error {
			recv := page.NewReceiver(page.NewRenderer(os.Stderr), c.t)
			c.router.AttachPage(pg, recv)
			return nil
		}
	}
	if c.readSelection == nil {
		c.readSelection = page.ReadSelection
	}
	if c.policy == (ReadyPolicy{}) {
		c.policy = DefaultReadyPolicy
	}

	c.wire()
	c.watchAuth()
	return c
}

// Router exposes the message bus, for surfaces that speak it directly.
func (c *Coordinator) Router() *bus.Router {
	return c.router
}

// Close stops the auth watch.
func (c *Coordinator) Close() {
	c.mu.Lock()
	unwatch := c.unwatch
	c.unwatch = nil
	c.mu.Unlock()
	if unwatch != nil {
		unwatch()
	}
}

// DeriveTitle builds a prompt title from content: the trimmed first
// line, cut to 47 runes plus "..." when it runs past 50, or the fixed
// default when it is empty.
func DeriveTitle(content string) string {
	line := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return DefaultTitle
	}
	runes := []rune(line)
	if len(runes) > titleLimit {
		return string(runes[:truncateAt]) + "..."
	}
	return line
}

// CaptureSelection stores the selection as the pending handoff record
// and requests the popup; the actual save happens in the popup flow.
// No network is touched. Empty text is a no-op.
func (c *Coordinator) CaptureSelection(text string, tab bus.Tab) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	err := c.store.PutPending(store.PendingSelection{
		Text:        text,
		SourceURL:   tab.URL,
		SourceTitle: tab.Title,
	})
	if err != nil {
		return err
	}
	c.openPopup()
	return nil
}

// QuickSave creates a prompt from content immediately. Without a token
// it fails before any network call, notifies, and opens the popup so
// the user can connect. On success the originating page is told via
// PROMPT_SAVED, with one injection-and-resend if the page's receiver
// is missing.
func (c *Coordinator) QuickSave(ctx context.Context, content string, tab bus.Tab) error {
	token, ok, err := c.auth.Token()
	if err != nil || !ok {
		c.notify.Error(c.t("notificationConnect"))
		c.openPopup()
		return errors.NewUnauthenticated(c.t("notificationConnect"))
	}

	cfg, err := settings.Load(c.store)
	if err != nil {
		// Unreadable settings fall back to defaults; a quick-save
		// should not fail over a preference record.
		cfg = settings.Defaults()
	}

	create := api.PromptCreate{
		Title:    DeriveTitle(content),
		Content:  content,
		Status:   string(cfg.DefaultStatus),
		IsPublic: false,
		Notes:    "Saved from: " + tab.URL,
	}
	if err := c.newService(cfg.APIEndpoint, token).CreatePrompt(ctx, create); err != nil {
		c.notify.Error(userMessage(err, c.t("notificationFailed")))
		return err
	}

	c.notify.Success(c.t("notificationSaved"))
	c.deliverSaved(ctx, tab.Page)
	return nil
}

// HandleShortcut is the keyboard quick-save path: ask the page for its
// current selection, refuse when it is empty, otherwise quick-save.
func (c *Coordinator) HandleShortcut(ctx context.Context, tab bus.Tab) {
	sel, err := c.resolveSelection(ctx, tab.Page)
	if err != nil {
		c.logf("resolve selection: %v", err)
		return
	}
	sel = strings.TrimSpace(sel)
	if sel == "" {
		c.notify.Error(c.t("notificationSelectText"))
		return
	}
	_ = c.QuickSave(ctx, sel, tab)
}

// resolveSelection asks the named page for its selection over the bus,
// injecting a receiver first when none is attached. Without a page
// name it reads the selection directly.
func (c *Coordinator) resolveSelection(ctx context.Context, pg string) (string, error) {
	if pg == "" {
		return c.readSelection()
	}
	if !c.router.PageAttached(pg) {
		if err := c.inject(pg); err != nil {
			return "", err
		}
	}
	raw, err := c.router.RequestPage(ctx, pg, bus.TypeGetSelection, nil)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	var resp bus.SelectionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	return resp.Selection, nil
}

// MenuEnabled reports whether the capture menu entries should be
// enabled. It tracks token presence through store change events.
func (c *Coordinator) MenuEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menuEnabled
}

// deliverSaved tells the page its save succeeded. A missing receiver
// triggers injection, a Backoff wait, and one resend per the policy;
// a failure after that is logged and dropped, since the save itself
// already landed.
func (c *Coordinator) deliverSaved(ctx context.Context, pg string) {
	if pg == "" {
		return
	}
	msg := bus.PromptSaved{Success: true}

	err := c.router.SendToPage(ctx, pg, bus.TypePromptSaved, msg)
	if err == nil {
		return
	}

	for i := 0; i < c.policy.Attempts; i++ {
		if injErr := c.inject(pg); injErr != nil {
			c.logf("inject receiver for %s: %v", pg, injErr)
			return
		}
		c.sleep(c.policy.Backoff)
		if err = c.router.SendToPage(ctx, pg, bus.TypePromptSaved, msg); err == nil {
			return
		}
	}
	c.logf("deliver save outcome to %s: %v", pg, err)
}

// wire registers the coordinator's inbound message handlers.
func (c *Coordinator) wire() {
	c.router.Handle(bus.TypeQuickSave, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req bus.QuickSaveRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.NewInvalidRequest("malformed quick-save request")
		}
		if err := c.QuickSave(ctx, req.Content, req.Tab); err != nil {
			return bus.QuickSaveResponse{
				Success: false,
				Error:   userMessage(err, c.t("notificationFailed")),
			}, nil
		}
		return bus.QuickSaveResponse{Success: true}, nil
	})

	c.router.Handle(bus.TypeGetPendingSelection, func(context.Context, json.RawMessage) (any, error) {
		ps, err := c.store.TakePending()
		if err != nil {
			return nil, err
		}
		if ps == nil {
			return bus.PendingSelectionResponse{}, nil
		}
		return bus.PendingSelectionResponse{
			PendingSelection: ps.Text,
			SourceURL:        ps.SourceURL,
			SourceTitle:      ps.SourceTitle,
		}, nil
	})
}

// watchAuth keeps the menu-enabled projection in sync with token
// presence. Event-driven, never polled.
func (c *Coordinator) watchAuth() {
	c.mu.Lock()
	c.menuEnabled = c.auth.HasToken()
	c.mu.Unlock()

	c.unwatch = c.store.Watch(func(ev store.Event) {
		if ev.Partition != store.PartitionLocal || ev.Key != store.KeyAPIKey {
			return
		}
		enabled := c.auth.HasToken()
		c.mu.Lock()
		c.menuEnabled = enabled
		c.mu.Unlock()
	})
}

// userMessage extracts the user-facing description from an error,
// preferring the service's own message.
func userMessage(err error, fallback string) string {
	var pErr *errors.PocketError
	if stderrors.As(err, &pErr) && pErr.Message != "" {
		return pErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
