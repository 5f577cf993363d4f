// Package bus is the typed request/response channel between the
// coordinator, page receivers, and popup sessions. Each message type
// has a defined request/response schema; handlers return a result (or
// error) instead of signalling "keep the channel open". Envelopes carry
// a ULID correlation id.
package bus

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/stefankummer/promptpocket/internal/errors"
)

// Type identifies a message type on the bus.
type Type string

const (
	// TypePromptSaved tells a page that a save finished (background → page).
	TypePromptSaved Type = "PROMPT_SAVED"
	// TypeQuickSave asks the coordinator to quick-save (popup/page → background).
	TypeQuickSave Type = "QUICK_SAVE"
	// TypeGetPendingSelection takes and clears the pending selection (popup → background).
	TypeGetPendingSelection Type = "GET_PENDING_SELECTION"
	// TypeGetSelection asks a page for its current selection (background → page).
	TypeGetSelection Type = "GET_SELECTION"
)

// Envelope is one message on the bus.
type Envelope struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handler processes a request and returns its response value.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Receiver is a page-side endpoint. A page that has not been injected
// yet is simply not attached.
type Receiver interface {
	Handle(ctx context.Context, env Envelope) (any, error)
}

// Router dispatches requests to background handlers and delivers
// messages to attached page receivers.
type Router struct {
	mu        sync.RWMutex
	handlers  map[Type]Handler
	receivers map[string]Receiver
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		handlers:  make(map[Type]Handler),
		receivers: make(map[string]Receiver),
	}
}

// Handle registers the background handler for a message type. A second
// registration for the same type replaces the first.
func (r *Router) Handle(t Type, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

// Request sends a request to the background handler for t and waits for
// its response.
func (r *Router) Request(ctx context.Context, t Type, payload any) (json.RawMessage, error) {
	r.mu.RLock()
	h, ok := r.handlers[t]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFound("handler for " + string(t))
	}

	env, err := newEnvelope(t, payload)
	if err != nil {
		return nil, err
	}

	result, err := h(ctx, env.Payload)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return data, nil
}

// AttachPage registers the receiver for a page. Attaching a page that
// already has a receiver replaces it (re-injection is idempotent).
func (r *Router) AttachPage(page string, recv Receiver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivers[page] = recv
}

// DetachPage removes a page's receiver.
func (r *Router) DetachPage(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receivers, page)
}

// PageAttached reports whether a page currently has a receiver.
func (r *Router) PageAttached(page string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.receivers[page]
	return ok
}

// SendToPage delivers a one-way message to a page. Delivery to a page
// with no receiver fails with a delivery error; this is the analogue of
// messaging a tab whose content script is not loaded.
func (r *Router) SendToPage(ctx context.Context, page string, t Type, payload any) error {
	_, err := r.requestPage(ctx, page, t, payload)
	return err
}

// RequestPage sends a request to a page and waits for its response.
func (r *Router) RequestPage(ctx context.Context, page string, t Type, payload any) (json.RawMessage, error) {
	return r.requestPage(ctx, page, t, payload)
}

func (r *Router) requestPage(ctx context.Context, page string, t Type, payload any) (json.RawMessage, error) {
	r.mu.RLock()
	recv, ok := r.receivers[page]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewDelivery(page, nil)
	}

	env, err := newEnvelope(t, payload)
	if err != nil {
		return nil, err
	}

	result, err := recv.Handle(ctx, env)
	if err != nil {
		return nil, errors.NewDelivery(page, err)
	}
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return data, nil
}

func newEnvelope(t Type, payload any) (Envelope, error) {
	env := Envelope{ID: ulid.Make().String(), Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return env, errors.NewInternal(err)
		}
		env.Payload = data
	}
	return env, nil
}
