package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	previewStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 2)
)

// =============================================================================
// BrowseModel - Interactive chord browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing the chord library.
type BrowseModel struct {
	Library   *library.Library
	Visible   []*chord.Chord
	Cursor    int
	Offset    int
	Height    int
	Mode      styles.ShowMode
	Filter    string
	Filtering bool
	Selected  *chord.Chord
}

// NewBrowseModel creates a browser over every chord of lib.
func NewBrowseModel(lib *library.Library) BrowseModel {
	return BrowseModel{
		Library: lib,
		Visible: lib.Chords(),
		Height:  15,
		Mode:    styles.Normal,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "/":
			m.Filtering = true
		case "m":
			if m.Mode == styles.Normal {
				m.Mode = styles.Simple
			} else {
				m.Mode = styles.Normal
			}
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			m.Selected = m.Visible[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.Filtering = false
		return m, nil
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter = ""
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
	default:
		return m, nil
	}
	m.Visible = m.Library.Search(m.Filter)
	m.Cursor, m.Offset = 0, 0
	return m, nil
}

func (m *BrowseModel) moveCursor(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Visible) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Chord Library"))
	b.WriteString("\n")
	if m.Filtering {
		b.WriteString(StyleHighlight.Render("/" + m.Filter + "█"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  m mode  ⏎ select  q quit"))
	}
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no chords match " + fmt.Sprintf("%q", m.Filter)))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		ch := m.Visible[i]
		line := fmt.Sprintf("%-10s %s", ch.Name, listDimStyle.Render(ch.FretString()))
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + fmt.Sprintf("%-10s", ch.Name)))
			list.WriteString(" " + listNormalStyle.Render(ch.FretString()))
		} else {
			list.WriteString("  " + listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	preview, err := renderFretboard(m.Visible[m.Cursor], m.Mode)
	if err != nil {
		preview = styleIconError.Render(err.Error())
	}
	header := StyleHighlight.Render(m.Visible[m.Cursor].Name) + " " + listDimStyle.Render(m.Mode.String())
	pane := previewStyle.Render(header + "\n\n" + strings.TrimRight(preview, "\n"))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", pane))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

func (c *CLI) browseCommand() *cobra.Command {
	var path string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the chord library interactively",
		Long: `Browse the chord library with a live fretboard preview.

Press enter to pick a chord. With --output the chosen chord is rendered
like "chordview render" would.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVar(&path, "library", "", "chord library file (.toml, .yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "render the selection to this file")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s) when rendering")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, path string, opts renderOpts) error {
	lib, err := c.loadLibrary(ctx, path)
	if err != nil {
		return err
	}
	if lib.Len() == 0 {
		printInfo("The library is empty")
		return nil
	}

	final, err := tea.NewProgram(NewBrowseModel(lib), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	sel := final.(BrowseModel).Selected
	if sel == nil {
		return nil
	}

	if opts.output == "" && opts.formats == "" {
		printSuccess("Selected %s", StyleHighlight.Render(displayName(sel)))
		printNextStep("Render it", "chordview render "+fmt.Sprintf("%q", sel.Name))
		return nil
	}

	ropts := defaultRenderOpts()
	ropts.output = opts.output
	if opts.formats != "" {
		ropts.formats = opts.formats
	}
	ropts.library = path
	return c.runRender(ctx, sel.Name, ropts)
}
