package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stefankummer/promptpocket/internal/config"
	"github.com/stefankummer/promptpocket/internal/coordinator"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"prompt_quick_save": {
		def:     quickSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleQuickSave },
	},
	"prompt_capture": {
		def:     captureToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCapture },
	},
	"prompt_pending": {
		def:     pendingToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePending },
	},
}

var quickSaveToolDef = mcp.NewTool("prompt_quick_save",
	mcp.WithDescription("Save content to PromptPocket immediately as a new prompt. The title is derived from the first line."),
	mcp.WithString("content", mcp.Required(),
		mcp.Description("The prompt text to save."),
	),
	mcp.WithString("source_url",
		mcp.Description("URL of the page the content came from; recorded in the prompt's notes."),
	),
	mcp.WithString("source_title",
		mcp.Description("Title of the source page."),
	),
)

var captureToolDef = mcp.NewTool("prompt_capture",
	mcp.WithDescription("Stage content as the pending selection for the next PromptPocket form session, without saving it yet. A second capture overwrites the first."),
	mcp.WithString("content", mcp.Required(),
		mcp.Description("The selected text to stage."),
	),
	mcp.WithString("source_url",
		mcp.Description("URL of the page the selection came from."),
	),
	mcp.WithString("source_title",
		mcp.Description("Title of the source page."),
	),
)

var pendingToolDef = mcp.NewTool("prompt_pending",
	mcp.WithDescription("Read and clear the pending selection staged by prompt_capture or the capture menu. Returns empty fields when nothing is pending."),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns the unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the PromptPocket tools
// registered. Tools listed in cfg.DisabledTools are excluded.
func NewServer(coord *coordinator.Coordinator, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"promptpocket",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(coord)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(coord *coordinator.Coordinator, cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(coord, cfg, version))
}
