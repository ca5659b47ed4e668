// Package notejson implements the JSON persistence format for field notes.
//
// The format is a single JSON array of flat objects, one per note, with a
// fixed set of string-valued keys. Both directions are hand-written: the
// decoder must accept documents with missing or null fields (resolving them
// to empty strings) and reject anything outside the known shape with a
// position-carrying error, neither of which encoding/json provides.
package notejson

import (
	"bytes"
	"fmt"

	"github.com/hpungsan/fieldnotes/internal/note"
)

// field binds a storage key to its accessors on the note record.
type field struct {
	key string
	get func(*note.FieldNote) string
	set func(*note.FieldNote, string)
}

// fields lists the persisted keys in encoding order.
var fields = []field{
	{"date", func(n *note.FieldNote) string { return n.Date }, func(n *note.FieldNote, v string) { n.Date = v }},
	{"time", func(n *note.FieldNote) string { return n.Time }, func(n *note.FieldNote, v string) { n.Time = v }},
	{"location", func(n *note.FieldNote) string { return n.Location }, func(n *note.FieldNote, v string) { n.Location = v }},
	{"setting", func(n *note.FieldNote) string { return n.Setting }, func(n *note.FieldNote, v string) { n.Setting = v }},
	{"participants", func(n *note.FieldNote) string { return n.Participants }, func(n *note.FieldNote, v string) { n.Participants = v }},
	{"activities", func(n *note.FieldNote) string { return n.Activities }, func(n *note.FieldNote, v string) { n.Activities = v }},
	{"sensory", func(n *note.FieldNote) string { return n.Sensory }, func(n *note.FieldNote, v string) { n.Sensory = v }},
	{"reflections", func(n *note.FieldNote) string { return n.Reflections }, func(n *note.FieldNote, v string) { n.Reflections = v }},
	{"culturalContext", func(n *note.FieldNote) string { return n.CulturalContext }, func(n *note.FieldNote, v string) { n.CulturalContext = v }},
	{"questions", func(n *note.FieldNote) string { return n.Questions }, func(n *note.FieldNote, v string) { n.Questions = v }},
	{"themes", func(n *note.FieldNote) string { return n.Themes }, func(n *note.FieldNote, v string) { n.Themes = v }},
}

// Encode serializes the entry sequence as a compact JSON array.
// Every object carries all keys in a fixed order, each value a JSON string
// (empty fields encode as "", never null, never omitted).
func Encode(entries []note.FieldNote) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeNote(&buf, &entries[i])
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func encodeNote(buf *bytes.Buffer, n *note.FieldNote) {
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, f.key)
		buf.WriteByte(':')
		writeString(buf, f.get(n))
	}
	buf.WriteByte('}')
}

// writeString writes s as a JSON string literal. Backslash, quote, and the
// named control characters use short escapes; remaining control characters
// below 0x20 become \u00xx. Bytes at or above 0x20 pass through untouched,
// so UTF-8 sequences survive byte-for-byte.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, c)
			} else {
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
}
