package notejson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/hpungsan/fieldnotes/internal/errors"
	"github.com/hpungsan/fieldnotes/internal/note"
)

// Decode parses a storage document back into the entry sequence.
//
// The accepted grammar is the exact shape Encode produces: an array of flat
// objects whose values are strings or null. The decoder is lenient about
// document content — unknown keys are ignored, missing keys and null values
// resolve to empty strings, and a blank document decodes to an empty
// sequence — but strict about structure: any other token shape, a bad escape,
// or truncated input fails the whole decode with a MALFORMED_DOCUMENT error.
// A failed decode never returns a partial sequence.
func Decode(data []byte) ([]note.FieldNote, error) {
	p := &parser{input: string(data)}
	return p.readEntries()
}

// parser is a cursor over the input document.
type parser struct {
	input string
	pos   int
}

func (p *parser) readEntries() ([]note.FieldNote, error) {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return []note.FieldNote{}, nil
	}
	if err := p.expect('['); err != nil {
		return nil, err
	}
	entries := []note.FieldNote{}
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return entries, nil
	}
	for {
		entry, err := p.readEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return entries, nil
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *parser) readEntry() (note.FieldNote, error) {
	var n note.FieldNote
	if err := p.expect('{'); err != nil {
		return n, err
	}
	values := map[string]string{}
	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return fromValues(values), nil
	}
	for {
		key, err := p.readString()
		if err != nil {
			return n, err
		}
		if err := p.expect(':'); err != nil {
			return n, err
		}
		value, err := p.readStringOrNull()
		if err != nil {
			return n, err
		}
		values[key] = value
		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return fromValues(values), nil
		default:
			return n, p.errorf("expected ',' or '}'")
		}
	}
}

// readStringOrNull reads a string literal, or the literal null as "".
func (p *parser) readStringOrNull() (string, error) {
	p.skipWhitespace()
	if strings.HasPrefix(p.input[p.pos:], "null") {
		p.pos += 4
		return "", nil
	}
	return p.readString()
}

func (p *parser) readString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.pos++
		if c == '"' {
			return sb.String(), nil
		}
		if c != '\\' {
			// Raw bytes pass through; multi-byte UTF-8 sequences never
			// contain '"' or '\\' so copying bytewise is safe.
			sb.WriteByte(c)
			continue
		}
		if p.pos >= len(p.input) {
			return "", p.errorf("incomplete escape")
		}
		esc := p.input[p.pos]
		p.pos++
		switch esc {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if err := p.readUnicodeEscape(&sb); err != nil {
				return "", err
			}
		default:
			return "", p.errorf("invalid escape")
		}
	}
	return "", p.errorf("unterminated string")
}

// readUnicodeEscape consumes the four hex digits of a \uXXXX escape. The
// escape encodes a UTF-16 code unit: a high surrogate followed by a \uXXXX
// low surrogate combines into one rune, an unpaired surrogate decodes to
// U+FFFD.
func (p *parser) readUnicodeEscape(sb *strings.Builder) error {
	r, err := p.readHex4()
	if err != nil {
		return err
	}
	if !utf16.IsSurrogate(r) {
		sb.WriteRune(r)
		return nil
	}
	if p.pos+2 <= len(p.input) && p.input[p.pos] == '\\' && p.input[p.pos+1] == 'u' {
		rewind := p.pos
		p.pos += 2
		r2, err := p.readHex4()
		if err != nil {
			return err
		}
		if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
			sb.WriteRune(dec)
			return nil
		}
		// Not a valid pair; the second escape stands on its own.
		p.pos = rewind
	}
	sb.WriteRune(unicode.ReplacementChar)
	return nil
}

func (p *parser) readHex4() (rune, error) {
	if p.pos+4 > len(p.input) {
		return 0, p.errorf("invalid unicode escape")
	}
	hex := p.input[p.pos : p.pos+4]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, p.errorf("invalid unicode escape")
	}
	p.pos += 4
	return rune(v), nil
}

func (p *parser) expect(expected byte) error {
	p.skipWhitespace()
	if p.peek() != expected {
		return p.errorf("expected %q", expected)
	}
	p.pos++
	return nil
}

func (p *parser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.NewMalformedDocument(fmt.Sprintf(format, args...), p.pos)
}

// fromValues builds a note from decoded key/value pairs. Keys absent from the
// map (missing in the document, or present as null and stored as "") yield
// empty fields; keys outside the known set are dropped.
func fromValues(values map[string]string) note.FieldNote {
	var n note.FieldNote
	for _, f := range fields {
		f.set(&n, values[f.key])
	}
	return n
}
