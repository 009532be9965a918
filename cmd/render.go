package cmd

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/global"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/loader"
)

type RenderOptions struct {
	MeshPath string
	OutDir   string
}

func NewCmdRender() *cobra.Command {
	o := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render <mesh> [--out dir]",
		Short: "生成全部配置文件到输出目录",
		Long: `生成 cloudflare/config.yaml、frp/<node>-frps.toml、frp/<node>-frpc.toml、
traefik/<node>-traefik-static.yaml 和 traefik/<node>-traefik-dynamic.yaml。
任何一个生成器失败时不写入任何文件。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Complete(args)
			return o.Run(cmd)
		},
	}
	cmd.Flags().StringVarP(&o.OutDir, "out", "o", "", "输出目录 (默认读取配置文件 out_dir,即 out)")
	return cmd
}

func (o *RenderOptions) Complete(args []string) {
	o.MeshPath = args[0]
	if o.OutDir == "" {
		o.OutDir = settings.Default.OutDir
	}
}

func (o *RenderOptions) Run(cmd *cobra.Command) error {
	opts, err := loaderOptions()
	if err != nil {
		return err
	}
	topo, err := loader.LoadTopology(o.MeshPath, opts...)
	if err != nil {
		return err
	}
	bundle, err := generator.GenerateAll(cmd.Context(), topo)
	if err != nil {
		return err
	}

	onWrite := func(generator.Artifact) {}
	if global.IsOutputTerminal {
		bar := progressbar.Default(int64(len(bundle.Artifacts)), "Writing")
		onWrite = func(generator.Artifact) { bar.Add(1) }
	}
	if err := bundle.Write(o.OutDir, onWrite); err != nil {
		return err
	}
	printArtifacts(cmd.OutOrStdout(), bundle)
	fmt.Fprintf(cmd.OutOrStdout(), "Configs written to %s\n", o.OutDir)
	return nil
}

func printArtifacts(w io.Writer, bundle *generator.Bundle) {
	for _, path := range bundle.Paths() {
		fmt.Fprintf(w, " - %s\n", path)
	}
}

func init() {
	rootCmd.AddCommand(NewCmdRender())
}
