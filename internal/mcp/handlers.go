package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/coordinator"
	"github.com/stefankummer/promptpocket/internal/errors"
)

// Handlers holds dependencies for MCP tool handlers. Everything goes
// through the coordinator's message surface, so MCP callers see the
// same semantics as the capture menu and shortcut.
type Handlers struct {
	coord *coordinator.Coordinator
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(coord *coordinator.Coordinator) *Handlers {
	return &Handlers{coord: coord}
}

// decode round-trips the request arguments through JSON into a typed
// request struct, so missing and extra fields behave like any other
// JSON input instead of panicking on a type assertion.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var out T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return out, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal args: %w", err)
	}
	return out, nil
}

// QuickSaveRequest represents the arguments for prompt_quick_save.
type QuickSaveRequest struct {
	Content     string `json:"content"`
	SourceURL   string `json:"source_url,omitempty"`
	SourceTitle string `json:"source_title,omitempty"`
}

// CaptureRequest represents the arguments for prompt_capture.
type CaptureRequest struct {
	Content     string `json:"content"`
	SourceURL   string `json:"source_url,omitempty"`
	SourceTitle string `json:"source_title,omitempty"`
}

// HandleQuickSave handles the prompt_quick_save tool call.
func (h *Handlers) HandleQuickSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QuickSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Content == "" {
		return errorResult(errors.NewInvalidRequest("content is required")), nil
	}

	raw, err := h.coord.Router().Request(ctx, bus.TypeQuickSave, bus.QuickSaveRequest{
		Content: input.Content,
		Tab:     bus.Tab{URL: input.SourceURL, Title: input.SourceTitle},
	})
	if err != nil {
		return errorResult(err), nil
	}

	var resp bus.QuickSaveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	if !resp.Success {
		return errorResult(errors.NewService(0, resp.Error)), nil
	}
	return successResult(map[string]any{
		"success": true,
		"title":   coordinator.DeriveTitle(input.Content),
	})
}

// HandleCapture handles the prompt_capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Content == "" {
		return errorResult(errors.NewInvalidRequest("content is required")), nil
	}

	err = h.coord.CaptureSelection(input.Content, bus.Tab{
		URL:   input.SourceURL,
		Title: input.SourceTitle,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"pending": true})
}

// HandlePending handles the prompt_pending tool call.
func (h *Handlers) HandlePending(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.coord.Router().Request(ctx, bus.TypeGetPendingSelection, nil)
	if err != nil {
		return errorResult(err), nil
	}

	var resp bus.PendingSelectionResponse
	if raw != nil {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return errorResult(errors.NewInternal(err)), nil
		}
	}
	return successResult(map[string]any{
		"pending":          resp.PendingSelection != "",
		"pendingSelection": resp.PendingSelection,
		"sourceUrl":        resp.SourceURL,
		"sourceTitle":      resp.SourceTitle,
	})
}

// errorResult converts an error into an MCP error payload.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pErr, ok := err.(*errors.PocketError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
			"status":  pErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if pErr.Code != errors.ErrInternal && pErr.Details != nil {
			errorObj["details"] = pErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult wraps data as a JSON tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
