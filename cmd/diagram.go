package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/global"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/loader"
)

var (
	nodeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	serviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func NewCmdDiagram() *cobra.Command {
	return &cobra.Command{
		Use:   "diagram <mesh>",
		Short: "打印 mesh 的文本拓扑图",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loaderOptions()
			if err != nil {
				return err
			}
			topo, err := loader.LoadTopology(args[0], opts...)
			if err != nil {
				return err
			}
			art := generator.Diagram(topo)
			if global.IsOutputTerminal {
				art = colorize(art)
			}
			fmt.Fprintln(cmd.OutOrStdout(), art)
			return nil
		},
	}
}

// colorize 给节点行和服务行上色,其余行保持原样
func colorize(art string) string {
	lines := strings.Split(art, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "[ Node "):
			lines[i] = nodeStyle.Render(line)
		case strings.HasPrefix(line, generator.DiagramService):
			lines[i] = generator.DiagramService + serviceStyle.Render(strings.TrimPrefix(line, generator.DiagramService))
		}
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(NewCmdDiagram())
}
