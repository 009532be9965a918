package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/cmd/version"
	"github.com/wentf9/mesh-wizard/pkg/mcpserver"
)

func NewCmdServe() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "以 MCP server 方式在 stdio 上提供 validate/plan/render/diagram",
		Long: `启动 MCP server (stdio),提供 validate_mesh、plan_mesh、render_mesh、diagram_mesh 四个工具,
每个工具的参数为 {"path": "<mesh 文件或目录>"}。render_mesh 直接返回生成内容,不写文件。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loaderOptions()
			if err != nil {
				return err
			}
			return mcpserver.New(opts...).Run(cmd.Context(), version.Version)
		},
	}
}

func init() {
	rootCmd.AddCommand(NewCmdServe())
}
