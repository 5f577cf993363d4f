package page

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Toast display timing. A toast is fully visible, then fades, then is
// removed. These are fixed, not configurable.
const (
	ToastVisibleFor = 3000 * time.Millisecond
	ToastFadeFor    = 300 * time.Millisecond
)

// Kind selects the toast accent.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

var (
	successStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("35")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)
	fadedStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
)

// timer is the scheduling seam; tests replace it to drive the state
// machine by hand.
type timer interface {
	Stop() bool
}

type toastRoot struct {
	w io.Writer
}

// Renderer shows transient toasts. The root is created lazily on first
// use and reused afterwards; a new toast replaces the one currently
// showing rather than queueing behind it.
type Renderer struct {
	mu    sync.Mutex
	root  *toastRoot
	newW  func() io.Writer
	after func(d time.Duration, f func()) timer

	current     string
	currentKind Kind
	fading      bool
	hideTimer   timer
	removeTimer timer
}

// NewRenderer creates a toast renderer that writes to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		newW: func() io.Writer { return w },
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
}

// ensureRoot lazily creates the render root once; repeated calls reuse it.
func (r *Renderer) ensureRoot() *toastRoot {
	if r.root == nil {
		r.root = &toastRoot{w: r.newW()}
	}
	return r.root
}

// Show displays a toast. Any toast already showing (or fading) is
// removed outright first.
func (r *Renderer) Show(message string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	root := r.ensureRoot()

	// Replace, don't queue.
	if r.hideTimer != nil {
		r.hideTimer.Stop()
		r.hideTimer = nil
	}
	if r.removeTimer != nil {
		r.removeTimer.Stop()
		r.removeTimer = nil
	}

	r.current = message
	r.currentKind = kind
	r.fading = false

	style := successStyle
	if kind == KindError {
		style = errorStyle
	}
	fmt.Fprintln(root.w, style.Render(message))

	r.hideTimer = r.after(ToastVisibleFor, r.beginFade)
}

// beginFade moves the current toast into its fade-out phase.
func (r *Renderer) beginFade() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == "" {
		return
	}
	r.fading = true
	fmt.Fprintln(r.ensureRoot().w, fadedStyle.Render(r.current))
	r.removeTimer = r.after(ToastFadeFor, r.remove)
}

// remove clears the toast after the fade completes.
func (r *Renderer) remove() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = ""
	r.fading = false
	r.hideTimer = nil
	r.removeTimer = nil
}

// Showing reports whether a toast is currently displayed, and its text.
func (r *Renderer) Showing() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.current != ""
}

// Fading reports whether the current toast is in its fade-out phase.
func (r *Renderer) Fading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fading
}
