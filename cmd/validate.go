package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/pkg/loader"
)

func NewCmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <mesh>",
		Short: "按 schema 校验 mesh 文件或目录",
		Long: `读取 mesh 文件(或合并目录下的所有 *.yaml/*.yml 片段)并按内置 schema 校验,
一次列出全部结构错误。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loader.LoadRaw(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mesh file is valid ✅")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewCmdValidate())
}
