package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/pipeline"
)

// viewCommand creates the interactive layer browser.
func (c *CLI) viewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view [scene | layout.json]",
		Short: "Browse the matrix layers of a scene interactively",
		Long: `Browse the matrix layers of a scene interactively.

Accepts a scene, which is loaded and packed first, or a file written by
'layout'. Use left/right to switch layers, up/down to select a cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadLayout(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newLayerModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// loadLayout reads a layout file, or packs a scene through the cached pipeline.
func (c *CLI) loadLayout(ctx context.Context, path string, noCache bool) (*layout.Layout, error) {
	if strings.HasSuffix(path, pipeline.Extension(pipeline.FormatJSON)) {
		return layout.ReadFile(path)
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "initialize runner")
	}
	defer runner.Close()

	opts := pipeline.Options{Scene: path, Logger: c.Logger}
	sc, hash, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return runner.ComputeLayout(ctx, sc, hash, opts)
}

// =============================================================================
// layerModel - Interactive layer browser
// =============================================================================

// layerModel is the bubbletea model for browsing matrix layers.
type layerModel struct {
	layout *layout.Layout
	layer  int
	cursor int
}

func newLayerModel(l *layout.Layout) layerModel {
	return layerModel{layout: l}
}

func (m layerModel) Init() tea.Cmd {
	return nil
}

func (m layerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.layer > 0 {
			m.layer--
			m.cursor = 0
		}
	case "right", "l":
		if m.layer < m.layout.Rows-1 {
			m.layer++
			m.cursor = 0
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.layout.Layer(m.layer))-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m layerModel) View() string {
	var b strings.Builder

	title := m.layout.Name
	if title == "" {
		title = "layout"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  layer %d of %d", m.layer, m.layout.Rows)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ layer  ↑/↓ cell  q quit"))
	b.WriteString("\n\n")

	b.WriteString(layerTable(m.layout, m.layer, m.cursor))
	b.WriteString("\n\n")

	cells := m.layout.Layer(m.layer)
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d of %d columns occupied", len(cells), m.layout.Columns)))
	if m.cursor < len(cells) {
		c := cells[m.cursor]
		b.WriteString(StyleDim.Render("  ·  ") + StyleSuccess.Render(c.ID) + StyleDim.Render(fmt.Sprintf(" %d part(s)", len(c.Parts))))
	}
	b.WriteString("\n")
	return b.String()
}
