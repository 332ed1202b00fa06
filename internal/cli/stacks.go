package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/config"
)

// stacksCommand creates the stacks command that lists a config's stacks.
func (c *CLI) stacksCommand() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "stacks <config>",
		Short: "List the named stacks of a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := config.ParseFile(args[0], config.Options{LegacyLimits: legacy})
			if err != nil {
				return err
			}
			fmt.Println(renderStacksTable(tbl))
			printWarnings(tbl.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy-limits", false, "read x_lim from the y_lim token and leave y_lim unbounded")
	return cmd
}

// renderStacksTable draws one row per flushed block.
func renderStacksTable(tbl *config.Table) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(tbl.Blocks))
	for _, b := range tbl.Blocks {
		name := stackLabel(b.Name)
		kinds := make([]string, len(b.Layers))
		for i, k := range b.Kinds() {
			kinds[i] = string(k)
		}
		rows = append(rows, []string{name, fmt.Sprint(len(b.Layers)), strings.Join(kinds, " → ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stack", "Layers", "Pipeline").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 1:
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}
