package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/pkg/advisor"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/utils/file"
)

// newProvider mock 不为空时使用固定回复,便于离线运行
func newProvider(ctx context.Context, mock string) (advisor.Provider, error) {
	if mock != "" {
		return advisor.NewMockProvider(mock), nil
	}
	return advisor.NewGeminiProvider(ctx, settings.AI.Model, settings.AI.APIKeyEnv)
}

func NewCmdAISuggest() *cobra.Command {
	var mock string
	cmd := &cobra.Command{
		Use:   "ai-suggest <text-file> [out]",
		Short: "根据自然语言描述生成 mesh 草稿",
		Long: `读取描述拓扑的文本文件,请模型总结其中的服务和域名,生成一份两节点(vps + lan-cluster)的 mesh 草稿。
默认输出到 mesh-ai.yaml。草稿中的 token 需要手动替换。`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "mesh-ai.yaml"
			if len(args) == 2 {
				out = args[1]
			}
			description, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			provider, err := newProvider(cmd.Context(), mock)
			if err != nil {
				return err
			}
			draft, err := advisor.DraftFromText(cmd.Context(), provider, string(description))
			if err != nil {
				return err
			}
			content, err := generator.MarshalYAML(draft)
			if err != nil {
				return err
			}
			if err := file.WriteRecursive(out, content, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "AI draft written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&mock, "mock", "", "不调用模型,使用给定文本作为回复")
	return cmd
}

func NewCmdAIHA() *cobra.Command {
	var mock string
	cmd := &cobra.Command{
		Use:   "ai-ha <mesh> [out]",
		Short: "请模型给出高可用 / 故障切换建议",
		Long:  `根据现有 mesh 的公网节点、内网节点和服务请求建议,输出 markdown 报告,默认写入 ha-plan.md。`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "ha-plan.md"
			if len(args) == 2 {
				out = args[1]
			}
			opts, err := loaderOptions()
			if err != nil {
				return err
			}
			topo, err := loader.LoadTopology(args[0], opts...)
			if err != nil {
				return err
			}
			provider, err := newProvider(cmd.Context(), mock)
			if err != nil {
				return err
			}
			plan, err := advisor.SuggestHA(cmd.Context(), provider, topo)
			if err != nil {
				return err
			}
			if err := file.WriteRecursive(out, []byte(plan.Report), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "HA report written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&mock, "mock", "", "不调用模型,使用给定文本作为回复")
	return cmd
}

func init() {
	rootCmd.AddCommand(NewCmdAISuggest())
	rootCmd.AddCommand(NewCmdAIHA())
}
