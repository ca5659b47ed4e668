// Package note defines the field note entity and its rendered forms.
package note

// FieldNote represents a single ethnographic observation record.
// All fields are free text; formatting conventions (date layout, name lists)
// are the caller's concern. The zero value is a valid, fully-empty note —
// fields are plain strings and are never absent or null in memory.
//
// A note carries no identifier of its own: within a stored sequence it is
// identified purely by position, and an edit replaces the record wholesale.
type FieldNote struct {
	// Date of the observation
	Date string

	// Time of the observation
	Time string

	// Location where the observation took place
	Location string

	// Setting describes the physical and social environment
	Setting string

	// Participants involved in the observation
	Participants string

	// Activities and interactions observed
	Activities string

	// Sensory impressions (sights, sounds, smells)
	Sensory string

	// Reflections holds the observer's personal reflections
	Reflections string

	// CulturalContext captures cultural and social context
	CulturalContext string

	// Questions that arose during the observation
	Questions string

	// Themes emerging from the observation
	Themes string
}

// New returns an empty FieldNote.
func New() *FieldNote {
	return &FieldNote{}
}

// Summary returns the one-line list label for the note: "<date> - <location>".
// Both parts are emitted verbatim, even when empty.
func (n *FieldNote) Summary() string {
	return n.Date + " - " + n.Location
}
