package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/fieldnotes/internal/errors"
	"github.com/hpungsan/fieldnotes/internal/note"
	"github.com/hpungsan/fieldnotes/internal/store"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store) *cli.App {
	app := &cli.App{
		Name:    "fieldnotes",
		Usage:   "Local ethnographic field note store",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(st),
			listCmd(st),
			showCmd(st),
			updateCmd(st),
			deleteCmd(st),
			exportCmd(st),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// noteFlags returns the per-field flags shared by add and update.
func noteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Observation date"},
		&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Observation time"},
		&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Observation location"},
		&cli.StringFlag{Name: "setting", Usage: "Physical and social setting"},
		&cli.StringFlag{Name: "participants", Usage: "Participants involved"},
		&cli.StringFlag{Name: "activities", Usage: "Activities and interactions"},
		&cli.StringFlag{Name: "sensory", Usage: "Sensory impressions"},
		&cli.StringFlag{Name: "reflections", Usage: "Personal reflections"},
		&cli.StringFlag{Name: "cultural-context", Usage: "Cultural and social context"},
		&cli.StringFlag{Name: "questions", Usage: "Questions that arose"},
		&cli.StringFlag{Name: "themes", Usage: "Emerging themes"},
	}
}

// noteFromFlags builds a FieldNote from the field flags. Unset flags yield
// empty fields.
func noteFromFlags(c *cli.Context) note.FieldNote {
	return note.FieldNote{
		Date:            c.String("date"),
		Time:            c.String("time"),
		Location:        c.String("location"),
		Setting:         c.String("setting"),
		Participants:    c.String("participants"),
		Activities:      c.String("activities"),
		Sensory:         c.String("sensory"),
		Reflections:     c.String("reflections"),
		CulturalContext: c.String("cultural-context"),
		Questions:       c.String("questions"),
		Themes:          c.String("themes"),
	}
}

// noteJSON is the wire shape for a full note in CLI output.
type noteJSON struct {
	Index           int    `json:"index"`
	Summary         string `json:"summary"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	Setting         string `json:"setting"`
	Participants    string `json:"participants"`
	Activities      string `json:"activities"`
	Sensory         string `json:"sensory"`
	Reflections     string `json:"reflections"`
	CulturalContext string `json:"cultural_context"`
	Questions       string `json:"questions"`
	Themes          string `json:"themes"`
}

func toNoteJSON(index int, n *note.FieldNote) noteJSON {
	return noteJSON{
		Index:           index,
		Summary:         n.Summary(),
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

// summaryJSON is the wire shape for one list row.
type summaryJSON struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
}

// addCmd creates the add command.
func addCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Append a new field note",
		Flags: noteFlags(),
		Action: func(c *cli.Context) error {
			entries := st.LoadEntries()
			entries = append(entries, noteFromFlags(c))
			if err := st.SaveEntriesChecked(entries); err != nil {
				return outputError(err)
			}
			idx := len(entries) - 1
			return outputJSON(summaryJSON{Index: idx, Summary: entries[idx].Summary()})
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all field notes",
		Action: func(c *cli.Context) error {
			entries := st.LoadEntries()
			rows := make([]summaryJSON, len(entries))
			for i := range entries {
				rows[i] = summaryJSON{Index: i, Summary: entries[i].Summary()}
			}
			return outputJSON(rows)
		},
	}
}

// showCmd creates the show command.
func showCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the field note at a position",
		ArgsUsage: "<index>",
		Action: func(c *cli.Context) error {
			idx, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}
			entries := st.LoadEntries()
			if idx >= len(entries) {
				return outputError(errors.NewNotFound(idx, len(entries)))
			}
			return outputJSON(toNoteJSON(idx, &entries[idx]))
		},
	}
}

// updateCmd creates the update command.
func updateCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace the field note at a position (unset fields become empty)",
		ArgsUsage: "<index>",
		Flags:     noteFlags(),
		Action: func(c *cli.Context) error {
			idx, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}
			entries := st.LoadEntries()
			if idx >= len(entries) {
				return outputError(errors.NewNotFound(idx, len(entries)))
			}
			entries[idx] = noteFromFlags(c)
			if err := st.SaveEntriesChecked(entries); err != nil {
				return outputError(err)
			}
			return outputJSON(toNoteJSON(idx, &entries[idx]))
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove the field note at a position",
		ArgsUsage: "<index>",
		Action: func(c *cli.Context) error {
			idx, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}
			entries := st.LoadEntries()
			if idx >= len(entries) {
				return outputError(errors.NewNotFound(idx, len(entries)))
			}
			entries = append(entries[:idx], entries[idx+1:]...)
			if err := st.SaveEntriesChecked(entries); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"index": idx, "count": len(entries)})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the field note at a position to a file",
		ArgsUsage: "<index>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "Destination file path"},
			&cli.BoolFlag{Name: "html", Usage: "Export a standalone HTML page instead of Markdown"},
		},
		Action: func(c *cli.Context) error {
			idx, err := parseIndexArg(c)
			if err != nil {
				return outputError(err)
			}
			entries := st.LoadEntries()
			if idx >= len(entries) {
				return outputError(errors.NewNotFound(idx, len(entries)))
			}

			path := c.String("out")
			format := "markdown"
			if c.Bool("html") {
				format = "html"
				err = st.ExportToHTML(&entries[idx], path)
			} else {
				err = st.ExportToMarkdown(&entries[idx], path)
			}
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"index": idx, "path": path, "format": format})
		},
	}
}

// parseIndexArg reads the positional index argument.
func parseIndexArg(c *cli.Context) (int, error) {
	if c.NArg() < 1 {
		return 0, errors.NewInvalidRequest("an index argument is required")
	}
	idx, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("index must be an integer, got %q", c.Args().First()))
	}
	if idx < 0 {
		return 0, errors.NewInvalidRequest("index must not be negative")
	}
	return idx, nil
}

// outputJSON prints a value as indented JSON on stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError converts an error to a CLI exit error with a readable message.
func outputError(err error) error {
	if nErr, ok := err.(*errors.NoteError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", nErr.Code, nErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
