package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/fieldnotes/internal/errors"
	"github.com/hpungsan/fieldnotes/internal/note"
	"github.com/hpungsan/fieldnotes/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store) *Handlers {
	return &Handlers{store: st}
}

// NoteArgs carries the eleven note fields as tool arguments.
// Absent arguments decode to empty strings, matching the entity invariant.
type NoteArgs struct {
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Location        string `json:"location,omitempty"`
	Setting         string `json:"setting,omitempty"`
	Participants    string `json:"participants,omitempty"`
	Activities      string `json:"activities,omitempty"`
	Sensory         string `json:"sensory,omitempty"`
	Reflections     string `json:"reflections,omitempty"`
	CulturalContext string `json:"cultural_context,omitempty"`
	Questions       string `json:"questions,omitempty"`
	Themes          string `json:"themes,omitempty"`
}

// toNote builds a FieldNote from the arguments.
func (a *NoteArgs) toNote() note.FieldNote {
	return note.FieldNote{
		Date:            a.Date,
		Time:            a.Time,
		Location:        a.Location,
		Setting:         a.Setting,
		Participants:    a.Participants,
		Activities:      a.Activities,
		Sensory:         a.Sensory,
		Reflections:     a.Reflections,
		CulturalContext: a.CulturalContext,
		Questions:       a.Questions,
		Themes:          a.Themes,
	}
}

// noteArgsFrom mirrors a FieldNote back into the wire shape for responses.
func noteArgsFrom(n *note.FieldNote) NoteArgs {
	return NoteArgs{
		Date:            n.Date,
		Time:            n.Time,
		Location:        n.Location,
		Setting:         n.Setting,
		Participants:    n.Participants,
		Activities:      n.Activities,
		Sensory:         n.Sensory,
		Reflections:     n.Reflections,
		CulturalContext: n.CulturalContext,
		Questions:       n.Questions,
		Themes:          n.Themes,
	}
}

// Request types for each tool

// AddRequest represents the arguments for note_add.
type AddRequest struct {
	NoteArgs
}

// GetRequest represents the arguments for note_get.
type GetRequest struct {
	Index int `json:"index"`
}

// UpdateRequest represents the arguments for note_update.
type UpdateRequest struct {
	Index int `json:"index"`
	NoteArgs
}

// DeleteRequest represents the arguments for note_delete.
type DeleteRequest struct {
	Index int `json:"index"`
}

// ExportRequest represents the arguments for note_export.
type ExportRequest struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// Output types

// AddOutput is the result of note_add.
type AddOutput struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
	Count   int    `json:"count"`
}

// NoteOutput is the result of note_get and note_update.
type NoteOutput struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
	NoteArgs
}

// SummaryItem is one row of note_list output.
type SummaryItem struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
}

// ListOutput is the result of note_list.
type ListOutput struct {
	Items []SummaryItem `json:"items"`
	Count int           `json:"count"`
}

// DeleteOutput is the result of note_delete.
type DeleteOutput struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// ExportOutput is the result of note_export.
type ExportOutput struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	Format string `json:"format"`
}

// Handler implementations

// HandleAdd handles the note_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entries := h.store.LoadEntries()
	entries = append(entries, input.toNote())
	if err := h.store.SaveEntriesChecked(entries); err != nil {
		return errorResult(err), nil
	}

	idx := len(entries) - 1
	return successResult(AddOutput{
		Index:   idx,
		Summary: entries[idx].Summary(),
		Count:   len(entries),
	})
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entries := h.store.LoadEntries()
	n, err := entryAt(entries, input.Index)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(NoteOutput{
		Index:    input.Index,
		Summary:  n.Summary(),
		NoteArgs: noteArgsFrom(n),
	})
}

// HandleList handles the note_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := h.store.LoadEntries()

	items := make([]SummaryItem, len(entries))
	for i := range entries {
		items[i] = SummaryItem{Index: i, Summary: entries[i].Summary()}
	}

	return successResult(ListOutput{Items: items, Count: len(entries)})
}

// HandleUpdate handles the note_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entries := h.store.LoadEntries()
	if _, err := entryAt(entries, input.Index); err != nil {
		return errorResult(err), nil
	}

	entries[input.Index] = input.toNote()
	if err := h.store.SaveEntriesChecked(entries); err != nil {
		return errorResult(err), nil
	}

	return successResult(NoteOutput{
		Index:    input.Index,
		Summary:  entries[input.Index].Summary(),
		NoteArgs: noteArgsFrom(&entries[input.Index]),
	})
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entries := h.store.LoadEntries()
	if _, err := entryAt(entries, input.Index); err != nil {
		return errorResult(err), nil
	}

	entries = append(entries[:input.Index], entries[input.Index+1:]...)
	if err := h.store.SaveEntriesChecked(entries); err != nil {
		return errorResult(err), nil
	}

	return successResult(DeleteOutput{Index: input.Index, Count: len(entries)})
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Path == "" {
		return errorResult(errors.NewInvalidRequest("path is required")), nil
	}
	format := input.Format
	if format == "" {
		format = "markdown"
	}
	if format != "markdown" && format != "html" {
		return errorResult(errors.NewInvalidRequest("format must be one of: markdown, html")), nil
	}

	entries := h.store.LoadEntries()
	n, err := entryAt(entries, input.Index)
	if err != nil {
		return errorResult(err), nil
	}

	if format == "html" {
		err = h.store.ExportToHTML(n, input.Path)
	} else {
		err = h.store.ExportToMarkdown(n, input.Path)
	}
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ExportOutput{Index: input.Index, Path: input.Path, Format: format})
}

// entryAt bounds-checks an index into the entry sequence.
func entryAt(entries []note.FieldNote, index int) (*note.FieldNote, error) {
	if index < 0 {
		return nil, errors.NewInvalidRequest("index must not be negative")
	}
	if index >= len(entries) {
		return nil, errors.NewNotFound(index, len(entries))
	}
	return &entries[index], nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if nErr, ok := err.(*errors.NoteError); ok {
		errorObj := map[string]any{
			"code":    nErr.Code,
			"message": nErr.Message,
			"status":  nErr.Status,
		}
		if nErr.Code != errors.ErrInternal && nErr.Details != nil {
			errorObj["details"] = nErr.Details
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

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
