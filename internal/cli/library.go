package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/render/fretboard/barre"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// libraryCommand creates the library command group.
func (c *CLI) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and edit the chord library",
		Long: `Inspect the chord library and manage your own chords.

Chords added with "library add" are stored in ~/.config/chordview/chords/
and take precedence over library chords with the same name.`,
	}

	cmd.AddCommand(c.libraryListCommand())
	cmd.AddCommand(c.libraryShowCommand())
	cmd.AddCommand(c.libraryAddCommand())
	cmd.AddCommand(c.libraryRemoveCommand())

	return cmd
}

func (c *CLI) libraryListCommand() *cobra.Command {
	var path, search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List library chords",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryList(cmd.Context(), path, search)
		},
	}

	cmd.Flags().StringVar(&path, "library", "", "chord library file (.toml, .yaml)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only list chords whose name contains this")

	return cmd
}

func (c *CLI) runLibraryList(ctx context.Context, path, search string) error {
	lib, err := c.loadLibrary(ctx, path)
	if err != nil {
		return err
	}
	chords := lib.Search(search)
	if len(chords) == 0 {
		printInfo("No chords match %q", search)
		return nil
	}
	fmt.Fprintln(stdout, chordTable(chords))
	printDetail("%d of %d chords", len(chords), lib.Len())
	return nil
}

// chordTable renders chords as a bordered table.
func chordTable(chords []*chord.Chord) string {
	rows := make([][]string, len(chords))
	for i, ch := range chords {
		fingers := ch.FingerString()
		if fingers == "" {
			fingers = "—"
		}
		rows[i] = []string{ch.Name, ch.FretString(), fingers, barreLabel(ch)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Frets", "Fingers", "Barre").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func barreLabel(c *chord.Chord) string {
	s, ok := barre.Detect(c)
	if !ok {
		return ""
	}
	return "fret " + strconv.Itoa(s.Fret)
}

func (c *CLI) libraryShowCommand() *cobra.Command {
	var path, mode string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a chord with a fretboard preview",
		Example: `  chordview library show Am
  chordview library show C/8 --mode simple`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeChordNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryShow(cmd.Context(), args[0], path, mode)
		},
	}

	cmd.Flags().StringVar(&path, "library", "", "chord library file (.toml, .yaml)")
	cmd.Flags().StringVar(&mode, "mode", styles.Normal.String(), "show mode: normal, simple")

	return cmd
}

func (c *CLI) runLibraryShow(ctx context.Context, name, path, modeName string) error {
	mode, err := styles.ParseShowMode(modeName)
	if err != nil {
		return err
	}
	lib, err := c.loadLibrary(ctx, path)
	if err != nil {
		return err
	}
	ch, err := lib.Get(name)
	if err != nil {
		return err
	}
	board, err := renderFretboard(ch, mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(ch.Name))
	printKeyValue("Frets", ch.FretString())
	if ch.HasFingers() {
		printKeyValue("Fingers", ch.FingerString())
	}
	if b := barreLabel(ch); b != "" {
		printKeyValue("Barre", b)
	}
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, board)
	fmt.Fprintln(stdout)
	printNextStep("Render it", "chordview render "+strconv.Quote(ch.Name))
	return nil
}

func (c *CLI) libraryAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <frets> [fingers]",
		Short: "Add or replace a user chord",
		Example: `  chordview library add Cadd9 x32030 032040
  chordview library add "E7#9" 0-7-6-7-8-0`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fingers := ""
			if len(args) == 3 {
				fingers = args[2]
			}
			return c.runLibraryAdd(cmd.Context(), args[0], args[1], fingers)
		},
	}
	return cmd
}

func (c *CLI) runLibraryAdd(ctx context.Context, name, frets, fingers string) error {
	ch, err := chord.Parse(frets, fingers)
	if err != nil {
		return err
	}
	ch.Name = name

	store, err := c.userStore()
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(ctx, ch); err != nil {
		return err
	}

	loggerFromContext(ctx).Debug("stored chord", "name", name, "dir", store.Dir())
	printSuccess("Added %s", StyleHighlight.Render(displayName(ch)))
	return nil
}

func (c *CLI) libraryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a user chord",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryRemove(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runLibraryRemove(ctx context.Context, name string) error {
	store, err := c.userStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Get(ctx, name); err != nil {
		return err
	}
	if err := store.Delete(ctx, name); err != nil {
		return err
	}
	printSuccess("Removed %s", StyleHighlight.Render(name))
	return nil
}
