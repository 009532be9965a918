package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/loader"
)

func NewCmdPlan() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <mesh>",
		Short: "显示 render 将要生成的配置",
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
			printPlan(cmd.OutOrStdout(), generator.Summarize(topo))
			return nil
		},
	}
}

func printPlan(w io.Writer, plan generator.Plan) {
	fmt.Fprintf(w, "Mesh: %s\n", plan.Mesh)
	fmt.Fprintf(w, "Nodes: %s\n", strings.Join(plan.Nodes, ", "))
	fmt.Fprintln(w, "Services:")
	for _, s := range plan.Services {
		fmt.Fprintf(w, " • %s (%s) via %s @ %s\n", s.ID, s.Type, s.Via, s.Node)
	}
	fmt.Fprintln(w, "Artifacts:")
	cloudflare := "no"
	if plan.Cloudflare {
		cloudflare = "yes"
	}
	fmt.Fprintf(w, " - Cloudflare config: %s\n", cloudflare)
	fmt.Fprintf(w, " - FRP servers: %d\n", plan.FRPServers)
	fmt.Fprintf(w, " - FRP clients: %d\n", plan.FRPClients)
	fmt.Fprintf(w, " - Traefik nodes: %d\n", plan.TraefikNodes)
}

func init() {
	rootCmd.AddCommand(NewCmdPlan())
}
