package note

import "testing"

func TestNew_AllFieldsEmpty(t *testing.T) {
	n := New()

	for name, got := range map[string]string{
		"Date":            n.Date,
		"Time":            n.Time,
		"Location":        n.Location,
		"Setting":         n.Setting,
		"Participants":    n.Participants,
		"Activities":      n.Activities,
		"Sensory":         n.Sensory,
		"Reflections":     n.Reflections,
		"CulturalContext": n.CulturalContext,
		"Questions":       n.Questions,
		"Themes":          n.Themes,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty", name, got)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		location string
		want     string
	}{
		{
			name:     "both set",
			date:     "2024-01-01",
			location: "Cafe",
			want:     "2024-01-01 - Cafe",
		},
		{
			name:     "both empty keeps separator",
			date:     "",
			location: "",
			want:     " - ",
		},
		{
			name:     "only date",
			date:     "2024-03-15",
			location: "",
			want:     "2024-03-15 - ",
		},
		{
			name:     "content is not escaped",
			date:     "jan - feb",
			location: "the - spot",
			want:     "jan - feb - the - spot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FieldNote{Date: tt.date, Location: tt.location}
			if got := n.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
