package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/plotter"
	"github.com/matzehuels/arbor/pkg/render/tree/sink"
	"github.com/matzehuels/arbor/pkg/tracks"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	previewStyle      = lipgloss.NewStyle().PaddingLeft(2).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(colorDim)
)

// browseCommand creates the browse command, an interactive tree viewer.
func (c *CLI) browseCommand() *cobra.Command {
	var opts sourceOpts

	cmd := &cobra.Command{
		Use:   "browse <tracks>",
		Short: "Browse lineage trees interactively",
		Long: `Browse lists every track. Moving the cursor draws the lineage tree of the
selected track in the terminal with that track highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := opts.load(ctx, args[0])
			if err != nil {
				return err
			}
			if ws.tracks.Len() == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "%s contains no tracks", args[0])
			}
			_, err = tea.NewProgram(newBrowseModel(ctx, ws), tea.WithAltScreen()).Run()
			return err
		},
	}

	opts.register(cmd)
	return cmd
}

// =============================================================================
// browseModel - Track list with tree preview
// =============================================================================

// browseModel is the bubbletea model for the browse command. The plotter and
// canvas are shared between model copies; bubbletea runs Update serially.
type browseModel struct {
	ctx     context.Context
	tracks  *tracks.Tracks
	ids     []int64
	roots   map[int64]bool
	plotter *plotter.Plotter
	canvas  *sink.TextCanvas

	cursor, offset, height int
	highlight              bool
	drawn                  *int64 // track whose tree is on the canvas
	err                    error  // last draw error; the previous tree stays
}

func newBrowseModel(ctx context.Context, ws *workspace) browseModel {
	canvas := sink.NewTextCanvas(sink.WithStyled())
	p := plotter.New(canvas, ws.cfg.PlotterOptions())
	p.SetTracks(ws.tracks)

	roots := make(map[int64]bool)
	for _, r := range ws.tracks.Roots() {
		roots[r] = true
	}

	m := browseModel{
		ctx:       ctx,
		tracks:    ws.tracks,
		ids:       ws.tracks.IDs(),
		roots:     roots,
		plotter:   p,
		canvas:    canvas,
		height:    20,
		highlight: true,
	}
	m.draw()
	return m
}

// draw renders the tree of the track under the cursor.
func (m *browseModel) draw() {
	if len(m.ids) == 0 {
		return
	}
	id := m.ids[m.cursor]
	if err := m.plotter.DrawTree(m.ctx, id); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.drawn = layout.TrackID(id)
	if !m.highlight {
		m.plotter.Highlight(nil)
	}
}

// cycleColourMap switches to the next built-in colour map and recolours the
// drawn tree in place.
func (m *browseModel) cycleColourMap() {
	names := tracks.ColourMapNames()
	next := names[(slices.Index(names, m.tracks.ColourMap().Name)+1)%len(names)]
	cm, err := tracks.LookupColourMap(next)
	if err != nil {
		m.err = err
		return
	}
	m.tracks = tracks.New(m.tracks.Points(), m.tracks.Graph(), tracks.WithColourMap(cm))
	m.plotter.SetTracks(m.tracks)
	m.plotter.UpdateEdgeColours(m.ctx, true)
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
				m.draw()
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
				m.draw()
			}
		case "h":
			m.highlight = !m.highlight
			if m.highlight {
				m.plotter.Highlight(m.drawn)
			} else {
				m.plotter.Highlight(nil)
			}
		case "c":
			m.cycleColourMap()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Lineage Trees"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  h highlight  c colours  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), previewStyle.Render(m.previewView())))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] colours: %s", m.cursor+1, len(m.ids), m.tracks.ColourMap().Name)))
	return b.String()
}

func (m browseModel) listView() string {
	end := min(m.offset+m.height, len(m.ids))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		label := strconv.FormatInt(id, 10)
		if m.roots[id] {
			label += " ◆"
		}
		switch {
		case i == m.cursor:
			lines = append(lines, listSelectedStyle.Render("▸ "+label))
		case m.roots[id]:
			lines = append(lines, listNormalStyle.Render("  "+label))
		default:
			lines = append(lines, listDimStyle.Render("  "+label))
		}
	}
	return lipgloss.NewStyle().Width(14).Render(strings.Join(lines, "\n"))
}

func (m browseModel) previewView() string {
	var b strings.Builder
	if m.drawn != nil {
		tree := m.plotter.Tree()
		b.WriteString(styleHeader.Render(fmt.Sprintf("track %d · root %d · %s", *m.drawn, tree.Root, pluralize(len(tree.Nodes), "track"))))
		b.WriteString("\n\n")
		b.WriteString(m.canvas.String())
	}
	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(StyleError.Render(statusError.icon + " " + errors.UserMessage(m.err)))
	}
	return b.String()
}
