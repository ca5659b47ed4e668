package note

import "strings"

// CourseLabel is the course identifier stamped into every exported document.
// It is a fixed property of the notebook this tool was built for, not a note
// field; change it here if the notebook ever serves another course.
const CourseLabel = "COMM 1131"

// mdSection pairs a section heading with the field it renders.
type mdSection struct {
	heading string
	value   func(*FieldNote) string
}

// mdSections lists the document sections in render order.
var mdSections = []mdSection{
	{"Setting", func(n *FieldNote) string { return n.Setting }},
	{"Participants", func(n *FieldNote) string { return n.Participants }},
	{"Activities & Interactions", func(n *FieldNote) string { return n.Activities }},
	{"Sensory Impressions", func(n *FieldNote) string { return n.Sensory }},
	{"Personal Reflections", func(n *FieldNote) string { return n.Reflections }},
	{"Cultural/Social Context", func(n *FieldNote) string { return n.CulturalContext }},
	{"Questions", func(n *FieldNote) string { return n.Questions }},
	{"Emerging Themes", func(n *FieldNote) string { return n.Themes }},
}

// ToMarkdown renders the note as a Markdown document.
//
// The layout is fixed: a title with the location, a date line (with the time
// appended after a bullet separator only when present), the course label, a
// horizontal rule, then one "## heading" section per non-empty field in a
// fixed order. Empty fields are omitted entirely rather than rendered blank.
// Field content passes through verbatim — no Markdown escaping.
func (n *FieldNote) ToMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Field Note: ")
	sb.WriteString(n.Location)
	sb.WriteString("\n\n")

	sb.WriteString("**Date:** ")
	sb.WriteString(n.Date)
	if n.Time != "" {
		sb.WriteString(" • ")
		sb.WriteString(n.Time)
	}
	sb.WriteString("\n**Course:** ")
	sb.WriteString(CourseLabel)
	sb.WriteString("\n\n---\n\n")

	for i, s := range mdSections {
		body := s.value(n)
		if body == "" {
			continue
		}
		sb.WriteString("## ")
		sb.WriteString(s.heading)
		sb.WriteString("\n")
		sb.WriteString(body)
		// The final section closes with a single newline; every other
		// section is followed by a blank separator line.
		if i == len(mdSections)-1 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}
