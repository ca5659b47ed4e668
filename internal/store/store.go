// Package store is the storage gateway between the entry sequence and the
// filesystem. It owns the degrade-to-empty policy on load and the
// silent-failure policy on save; only the export operations surface errors
// to the caller.
package store

import (
	"log"
	"os"
	"strings"

	"github.com/hpungsan/fieldnotes/internal/config"
	"github.com/hpungsan/fieldnotes/internal/errors"
	"github.com/hpungsan/fieldnotes/internal/note"
	"github.com/hpungsan/fieldnotes/internal/notejson"
	"github.com/hpungsan/fieldnotes/internal/preview"
)

// Store reads and writes the entry sequence at the configured data file.
// It holds no state between calls beyond the configuration; callers own the
// in-memory sequence and must serialize their own access.
type Store struct {
	cfg *config.Config
}

// New creates a Store backed by the data file named in cfg.
func New(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// DataFile returns the path of the backing storage file.
func (s *Store) DataFile() string {
	return s.cfg.DataFile
}

// LoadEntries loads the stored entry sequence.
//
// A missing file, a blank file, an unreadable file, and a malformed document
// all yield an empty sequence: corrupt or absent storage degrades to "no
// entries" instead of failing the caller. Failures are logged. Callers that
// need to distinguish these cases use LoadEntriesChecked.
func (s *Store) LoadEntries() []note.FieldNote {
	entries, err := s.LoadEntriesChecked()
	if err != nil {
		log.Printf("error loading entries: %v", err)
		return []note.FieldNote{}
	}
	return entries
}

// LoadEntriesChecked loads the stored entry sequence, reporting failures.
// A missing or blank file is still an empty sequence, not an error; a read
// failure or malformed document returns the error and no entries.
func (s *Store) LoadEntriesChecked() ([]note.FieldNote, error) {
	data, err := os.ReadFile(s.cfg.DataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []note.FieldNote{}, nil
		}
		return nil, errors.NewIOFailed("read "+s.cfg.DataFile, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return []note.FieldNote{}, nil
	}
	return notejson.Decode(data)
}

// SaveEntries writes the full entry sequence to the data file, overwriting
// any previous content. A nil sequence saves as empty. Write failures are
// logged and swallowed; callers that need to observe them use
// SaveEntriesChecked.
func (s *Store) SaveEntries(entries []note.FieldNote) {
	if err := s.SaveEntriesChecked(entries); err != nil {
		log.Printf("error saving entries: %v", err)
	}
}

// SaveEntriesChecked writes the full entry sequence, reporting failures.
// The file is rewritten in place: a crash mid-write can leave a truncated
// store, which the lenient load policy then reads as empty.
func (s *Store) SaveEntriesChecked(entries []note.FieldNote) error {
	if entries == nil {
		entries = []note.FieldNote{}
	}
	data := notejson.Encode(entries)
	if err := os.WriteFile(s.cfg.DataFile, data, 0o644); err != nil {
		return errors.NewIOFailed("write "+s.cfg.DataFile, err)
	}
	return nil
}

// ExportToMarkdown writes the note's Markdown document to path, overwriting
// any existing file. Unlike load and save, export failures are returned:
// this is a one-shot user action that reports success or failure.
func (s *Store) ExportToMarkdown(n *note.FieldNote, path string) error {
	if err := os.WriteFile(path, []byte(n.ToMarkdown()), 0o644); err != nil {
		return errors.NewIOFailed("write "+path, err)
	}
	return nil
}

// ExportToHTML writes the note rendered as a standalone HTML page to path,
// overwriting any existing file. Failures are returned, as with
// ExportToMarkdown.
func (s *Store) ExportToHTML(n *note.FieldNote, path string) error {
	page, err := preview.RenderHTML(n)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return errors.NewIOFailed("write "+path, err)
	}
	return nil
}
