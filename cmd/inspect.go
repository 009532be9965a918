package cmd

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/pkg/loader"
)

func NewCmdInspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <mesh> <jsonpath>",
		Short: "用 JSONPath 查询合并后的原始文档",
		Long: `读取并合并 mesh 文件或目录(不做 schema 校验),再用 JSONPath 查询,
用于排查目录模式下片段合并的结果。
示例:
mesh-wizard inspect ./mesh.d '$.nodes[*].id'
mesh-wizard inspect mesh.yaml '$.services[?(@.type == "tcp")]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loader.Read(args[0])
			if err != nil {
				return err
			}
			results, err := loader.Query(doc, args[1])
			if err != nil {
				return err
			}
			opts := &ojg.Options{Indent: 2, Sort: true}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(r, opts))
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewCmdInspect())
}
