package page

import (
	"context"
	"encoding/json"

	"github.com/stefankummer/promptpocket/internal/bus"
)

// Receiver is the page-side endpoint on the message bus: it renders
// save outcomes as toasts and answers selection requests. It must work
// even when attached before anything else is set up, so the toast root
// is created lazily inside the renderer.
type Receiver struct {
	toasts        *Renderer
	t             func(key string) string
	readSelection func() (string, error)
}

// NewReceiver creates a page receiver. t translates message keys for
// toast text.
func NewReceiver(toasts *Renderer, t func(key string) string) *Receiver {
	return &Receiver{
		toasts:        toasts,
		t:             t,
		readSelection: ReadSelection,
	}
}

// Handle implements bus.Receiver.
func (r *Receiver) Handle(_ context.Context, env bus.Envelope) (any, error) {
	switch env.Type {
	case bus.TypePromptSaved:
		var msg bus.PromptSaved
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			return nil, err
		}
		if msg.Success {
			r.toasts.Show(r.t("promptSaved"), KindSuccess)
		} else {
			text := msg.Error
			if text == "" {
				text = r.t("failedToSave")
			}
			r.toasts.Show(text, KindError)
		}
		return nil, nil

	case bus.TypeGetSelection:
		// Best-effort: an unreadable clipboard is an empty selection.
		sel, err := r.readSelection()
		if err != nil {
			sel = ""
		}
		return bus.SelectionResponse{Selection: sel}, nil
	}
	return nil, nil
}
