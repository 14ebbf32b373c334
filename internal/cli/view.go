package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Glyphs and colours per content type in the lane strip.
var typeGlyphs = map[track.ContentType]string{
	track.Obstacle:       "█",
	track.TinyObstacle:   "▪",
	track.Pad:            "▲",
	track.InteractivePad: "◆",
	track.Platform:       "▬",
}

var typeStyles = map[track.ContentType]lipgloss.Style{
	track.Obstacle:       lipgloss.NewStyle().Foreground(colorRed),
	track.TinyObstacle:   lipgloss.NewStyle().Foreground(colorYellow),
	track.Pad:            lipgloss.NewStyle().Foreground(colorGreen),
	track.InteractivePad: lipgloss.NewStyle().Foreground(colorBlue),
	track.Platform:       lipgloss.NewStyle().Foreground(colorWhite),
}

// viewCommand creates the interactive run viewer.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [run.json]",
		Short: "Browse a generated run interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rn, err := io.ImportRun(args[0])
			if err != nil {
				return err
			}
			if rn.Placed() == 0 {
				printWarning("Run %s placed nothing", rn.ID)
				return nil
			}
			_, err = tea.NewProgram(NewRunViewModel(rn), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// RunViewModel - Interactive record browser
// =============================================================================

// RunViewModel is the bubbletea model for browsing the records of a run.
// Each row shows the record with a strip marking its lane.
type RunViewModel struct {
	Run    *run.Run
	Lanes  track.LaneModel
	Cursor int
	Height int
	Offset int
}

// NewRunViewModel creates a viewer for rn.
func NewRunViewModel(rn *run.Run) RunViewModel {
	return RunViewModel{
		Run:    rn,
		Lanes:  track.NewLaneModel(rn.Config),
		Height: 15,
	}
}

func (m RunViewModel) Init() tea.Cmd {
	return nil
}

func (m RunViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Run.Result.Records)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Cursor = max(m.Cursor-1, 0)
		case "down", "j":
			m.Cursor = min(m.Cursor+1, n-1)
		case "pgup":
			m.Cursor = max(m.Cursor-m.Height, 0)
		case "pgdown":
			m.Cursor = min(m.Cursor+m.Height, n-1)
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = n - 1
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m RunViewModel) View() string {
	var b strings.Builder
	records := m.Run.Result.Records

	b.WriteString(StyleTitle.Render("Run " + m.Run.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  pgup/pgdn page  g/G ends  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(records))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rec := records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(rec.Slot),
			fmt.Sprintf("%.2f", rec.Position.Z),
			fmt.Sprintf("%.2f", rec.Position.X),
			rec.Type.String(),
			m.laneStrip(rec),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Slot", "Z", "X", "Type", "Lane").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", m.Cursor+1, len(records), m.gapHint())))

	return b.String()
}

// laneStrip draws one cell per lane with the record's glyph in its lane.
// Freeform tracks get a ten-cell strip proportional to X.
func (m RunViewModel) laneStrip(rec track.PlacementRecord) string {
	cells := 10
	idx := 0
	if lanes := m.Lanes.Lanes(); lanes != nil {
		cells = len(lanes)
		idx = m.Lanes.LaneIndex(rec.Position.X)
	} else if w := m.Run.Config.XMax - m.Run.Config.XMin; w > 0 {
		idx = int((rec.Position.X - m.Run.Config.XMin) / w * float64(cells))
	}
	idx = min(max(idx, 0), cells-1)

	var b strings.Builder
	for i := range cells {
		if i == idx {
			b.WriteString(typeStyles[rec.Type].Render(typeGlyphs[rec.Type]))
		} else {
			b.WriteString(listDimStyle.Render("·"))
		}
	}
	return b.String()
}

// gapHint describes the forward gap to the previous record.
func (m RunViewModel) gapHint() string {
	if m.Cursor == 0 {
		return "first record"
	}
	records := m.Run.Result.Records
	gap := records[m.Cursor].Position.Z - records[m.Cursor-1].Position.Z
	return fmt.Sprintf("gap %.2f from previous", gap)
}
