package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hpungsan/fieldnotes/internal/config"
	"github.com/hpungsan/fieldnotes/internal/errors"
	"github.com/hpungsan/fieldnotes/internal/note"
)

// newTestStore creates a Store backed by a data file in a temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{
		DataFile: filepath.Join(t.TempDir(), "field_notes.json"),
	}
	return New(cfg)
}

func TestLoadEntries_MissingFile(t *testing.T) {
	st := newTestStore(t)

	entries := st.LoadEntries()
	if entries == nil {
		t.Fatal("LoadEntries returned nil, want empty slice")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}

	checked, err := st.LoadEntriesChecked()
	if err != nil {
		t.Errorf("LoadEntriesChecked on missing file: %v", err)
	}
	if len(checked) != 0 {
		t.Errorf("got %d entries, want 0", len(checked))
	}
}

func TestLoadEntries_BlankFile(t *testing.T) {
	st := newTestStore(t)
	if err := os.WriteFile(st.DataFile(), []byte(" \n\t "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := st.LoadEntriesChecked()
	if err != nil {
		t.Errorf("blank file should not be an error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestLoadEntries_CorruptFileDegradesToEmpty(t *testing.T) {
	st := newTestStore(t)
	if err := os.WriteFile(st.DataFile(), []byte(`[{"date":`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Default contract: corrupt storage reads as no entries.
	entries := st.LoadEntries()
	if entries == nil || len(entries) != 0 {
		t.Errorf("LoadEntries = %v, want empty slice", entries)
	}

	// Checked variant surfaces the decode failure.
	_, err := st.LoadEntriesChecked()
	if !errors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("LoadEntriesChecked error = %v, want MALFORMED_DOCUMENT", err)
	}
}

func TestSaveEntries_NilSavesEmptyArray(t *testing.T) {
	st := newTestStore(t)
	st.SaveEntries(nil)

	data, err := os.ReadFile(st.DataFile())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file content = %q, want %q", data, "[]")
	}
}

func TestSaveEntries_OverwritesPreviousContent(t *testing.T) {
	st := newTestStore(t)
	st.SaveEntries([]note.FieldNote{{Date: "2024-01-01"}, {Date: "2024-01-02"}})
	st.SaveEntries([]note.FieldNote{{Date: "2024-02-01"}})

	entries := st.LoadEntries()
	if len(entries) != 1 || entries[0].Date != "2024-02-01" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestSaveEntriesChecked_UnwritablePath(t *testing.T) {
	cfg := &config.Config{
		DataFile: filepath.Join(t.TempDir(), "missing", "deep", "field_notes.json"),
	}
	st := New(cfg)

	err := st.SaveEntriesChecked([]note.FieldNote{{}})
	if !errors.Is(err, errors.ErrIOFailed) {
		t.Errorf("error = %v, want IO_FAILED", err)
	}

	// The non-throwing variant swallows the same failure.
	st.SaveEntries([]note.FieldNote{{}})
}

func TestExportToMarkdown(t *testing.T) {
	st := newTestStore(t)
	n := note.FieldNote{Date: "2024-01-01", Location: "Cafe", Setting: "Quiet."}

	path := filepath.Join(t.TempDir(), "note.md")
	if err := st.ExportToMarkdown(&n, path); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != n.ToMarkdown() {
		t.Errorf("exported content differs from ToMarkdown()\ngot: %q", data)
	}
}

func TestExportToMarkdown_FailurePropagates(t *testing.T) {
	st := newTestStore(t)
	n := note.FieldNote{Location: "Cafe"}

	err := st.ExportToMarkdown(&n, filepath.Join(t.TempDir(), "no", "such", "dir", "note.md"))
	if !errors.Is(err, errors.ErrIOFailed) {
		t.Errorf("error = %v, want IO_FAILED", err)
	}
}

func TestExportToHTML(t *testing.T) {
	st := newTestStore(t)
	n := note.FieldNote{Date: "2024-01-01", Location: "Cafe", Setting: "Quiet."}

	path := filepath.Join(t.TempDir(), "note.html")
	if err := st.ExportToHTML(&n, path); err != nil {
		t.Fatalf("ExportToHTML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Field Note: Cafe") {
		t.Errorf("rendered page missing title heading:\n%s", html)
	}
	if !strings.Contains(html, "Quiet.") {
		t.Errorf("rendered page missing section body:\n%s", html)
	}
}

func TestLoadAfterSave_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	want := []note.FieldNote{
		{Date: "2024-01-01", Location: "Cafe", Setting: "line\nbreak", Themes: "café"},
		{Date: "2024-01-02", Location: "Library", Questions: `why "quiet"?`},
	}
	st.SaveEntries(want)

	got := st.LoadEntries()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, want)
	}
}
