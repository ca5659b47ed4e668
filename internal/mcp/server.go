// Package mcp exposes the field note store as MCP tools over stdio.
package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/fieldnotes/internal/config"
	"github.com/hpungsan/fieldnotes/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"note_add": {
		def:     addToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
	"note_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"note_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"note_update": {
		def:     updateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdate },
	},
	"note_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"note_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
}

// fieldOptions returns the per-field tool options shared by add and update.
func fieldOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("date", mcp.Description("Observation date")),
		mcp.WithString("time", mcp.Description("Observation time")),
		mcp.WithString("location", mcp.Description("Observation location")),
		mcp.WithString("setting", mcp.Description("Physical and social setting")),
		mcp.WithString("participants", mcp.Description("Participants involved")),
		mcp.WithString("activities", mcp.Description("Activities and interactions")),
		mcp.WithString("sensory", mcp.Description("Sensory impressions")),
		mcp.WithString("reflections", mcp.Description("Personal reflections")),
		mcp.WithString("cultural_context", mcp.Description("Cultural and social context")),
		mcp.WithString("questions", mcp.Description("Questions that arose")),
		mcp.WithString("themes", mcp.Description("Emerging themes")),
	}
}

var addToolDef = mcp.NewTool("note_add",
	append([]mcp.ToolOption{
		mcp.WithDescription("Append a new field note to the store. Unset fields are stored as empty text."),
	}, fieldOptions()...)...,
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch the field note at a position in the store."),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the note")),
)

var listToolDef = mcp.NewTool("note_list",
	mcp.WithDescription("List all field notes as '<date> - <location>' summaries with their positions."),
)

var updateToolDef = mcp.NewTool("note_update",
	append([]mcp.ToolOption{
		mcp.WithDescription("Replace the field note at a position. The note is replaced wholesale: unset fields become empty text."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the note")),
	}, fieldOptions()...)...,
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Remove the field note at a position. Later notes shift down by one."),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the note")),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Export the field note at a position to a file as Markdown or a standalone HTML page."),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the note")),
	mcp.WithString("path", mcp.Required(), mcp.Description("Destination file path; overwritten if present")),
	mcp.WithString("format", mcp.Description("Output format: markdown (default) or html")),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the field note tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fieldnotes",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("config: unknown disabled tool %q", name)
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
func Run(st *store.Store, cfg *config.Config, version string) error {
	s := NewServer(st, cfg, version)
	return server.ServeStdio(s)
}
