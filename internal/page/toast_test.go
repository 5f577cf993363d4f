package page

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// manualTimer fires only when the test says so.
type manualTimer struct {
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimer) fire() {
	if !m.stopped {
		m.f()
	}
}

// newManualRenderer returns a renderer whose timers are driven by hand,
// plus the list of scheduled timers in order.
func newManualRenderer(w *bytes.Buffer) (*Renderer, *[]*manualTimer, *[]time.Duration) {
	r := NewRenderer(w)
	timers := &[]*manualTimer{}
	delays := &[]time.Duration{}
	r.after = func(d time.Duration, f func()) timer {
		mt := &manualTimer{f: f}
		*timers = append(*timers, mt)
		*delays = append(*delays, d)
		return mt
	}
	return r, timers, delays
}

func TestShow_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	r, timers, delays := newManualRenderer(&buf)

	r.Show("Prompt saved successfully!", KindSuccess)

	msg, showing := r.Showing()
	if !showing || msg != "Prompt saved successfully!" {
		t.Fatalf("Showing() = %q, %v", msg, showing)
	}
	if r.Fading() {
		t.Error("toast should not fade immediately")
	}
	if (*delays)[0] != ToastVisibleFor {
		t.Errorf("visible delay = %v, want %v", (*delays)[0], ToastVisibleFor)
	}

	// Visible phase ends: fade begins.
	(*timers)[0].fire()
	if !r.Fading() {
		t.Error("toast should be fading after the visible phase")
	}
	if (*delays)[1] != ToastFadeFor {
		t.Errorf("fade delay = %v, want %v", (*delays)[1], ToastFadeFor)
	}

	// Fade ends: toast removed.
	(*timers)[1].fire()
	if _, showing := r.Showing(); showing {
		t.Error("toast should be removed after the fade")
	}
}

func TestShow_ReplacesCurrentToast(t *testing.T) {
	var buf bytes.Buffer
	r, timers, _ := newManualRenderer(&buf)

	r.Show("first", KindSuccess)
	r.Show("second", KindError)

	if (*timers)[0].stopped != true {
		t.Error("first toast's timer should be cancelled")
	}
	msg, _ := r.Showing()
	if msg != "second" {
		t.Errorf("Showing() = %q, want %q", msg, "second")
	}

	// Firing the first (cancelled) timer must not disturb the second.
	(*timers)[0].fire()
	if r.Fading() {
		t.Error("second toast must not inherit the first one's fade")
	}
}

func TestShow_RendersMessage(t *testing.T) {
	var buf bytes.Buffer
	r, _, _ := newManualRenderer(&buf)

	r.Show("saved", KindSuccess)
	if !strings.Contains(buf.String(), "saved") {
		t.Errorf("output %q should contain the message", buf.String())
	}
}

func TestEnsureRoot_Idempotent(t *testing.T) {
	var buf bytes.Buffer
	r, _, _ := newManualRenderer(&buf)

	first := r.ensureRoot()
	second := r.ensureRoot()
	if first != second {
		t.Error("repeated root creation should reuse the same root")
	}
}
