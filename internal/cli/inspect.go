package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/procmap/procmap/pkg/layout"
)

// inspectCommand creates the inspect command: an interactive viewer for a
// computed layout file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout interactively",
		Long: `Browse a computed layout interactively.

Opens a terminal viewer over a layout.json file (produced by 'layout'),
listing every node with its rank and position. The selected node's incoming
and outgoing edges are shown below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := layout.ReadPositionedFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			if p.IsEmpty() {
				printInfo("Layout is empty")
				return nil
			}

			model := newNodeListModel(p)
			prog := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = prog.Run()
			return err
		},
	}
}

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// nodeListModel is the bubbletea model for the layout viewer.
type nodeListModel struct {
	Layout layout.Positioned
	Cursor int
	Height int
	Offset int
}

func newNodeListModel(p layout.Positioned) nodeListModel {
	return nodeListModel{
		Layout: p,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m nodeListModel) Init() tea.Cmd {
	return nil
}

func (m nodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m nodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Layout.Nodes) {
		end = len(m.Layout.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Layout.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := n.Label
		if label == "" {
			label = n.ID
		}

		rows = append(rows, []string{
			cursor,
			n.ID,
			label,
			fmt.Sprintf("%d", n.Rank),
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "Rank", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.edgesView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Nodes))))

	return b.String()
}

// edgesView lists the selected node's edges.
func (m nodeListModel) edgesView() string {
	id := m.Layout.Nodes[m.Cursor].ID

	var b strings.Builder
	count := 0
	for _, e := range m.Layout.Edges {
		if e.Source != id && e.Target != id {
			continue
		}
		count++
		if count > 5 {
			b.WriteString(listDimStyle.Render("  ...") + "\n")
			break
		}
		line := fmt.Sprintf("  %s %s %s", e.Source, iconArrow, e.Target)
		if e.Kind != "" {
			line += listDimStyle.Render(" (" + e.Kind + ")")
		}
		b.WriteString(line + "\n")
	}
	if count == 0 {
		return listDimStyle.Render("  no edges") + "\n"
	}
	return b.String()
}
