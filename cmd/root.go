package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/cmd/utils"
	"github.com/wentf9/mesh-wizard/cmd/version"
	"github.com/wentf9/mesh-wizard/pkg/config"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/logger"
)

var (
	cfgFile     string
	keyFileFlag string
	// PersistentPreRunE 中加载,子命令直接读取
	settings = config.Defaults()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mesh-wizard [command] [flags]",
	Short: "根据 mesh 拓扑文件生成 Cloudflare Tunnel / FRP / Traefik 配置",
	Long: `mesh-wizard 读取描述节点和服务的 mesh yaml(单个文件或一个目录下的多个片段),
校验后生成 cloudflared ingress、frps/frpc、traefik 静态和动态配置以及一张文本拓扑图。
它只生成配置文件,不会连接或修改任何主机。`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			version.PrintFullVersion(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help() // 显示帮助信息
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		settings = s
		if !logger.SetLogLevel(s.Default.LogLevel) {
			logger.Logger.Warn("未知的日志级别,使用默认级别", "log_level", s.Default.LogLevel)
		}
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if debugFlag {
			logger.SetLogLevel("debug")
		}
		logger.Logger.Debug("配置已加载", "path", s.Path, "key_file", keyFile())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Ctrl-C 时取消 probe/serve 等阻塞操作
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// keyFile 命令行参数优先,其次配置文件
func keyFile() string {
	if keyFileFlag != "" {
		return keyFileFlag
	}
	return settings.Secret.KeyFile
}

func loaderOptions() ([]loader.Option, error) {
	return utils.LoaderOptions(keyFile())
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "显示版本信息")
	rootCmd.PersistentFlags().Bool("debug", false, "开启调试模式")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "ini 配置文件 (默认 ./.mesh-wizard.ini 或 $HOME/.mesh-wizard/config.ini)")
	rootCmd.PersistentFlags().StringVar(&keyFileFlag, "key-file", "", "解密 ENC: 字段使用的密钥文件")
}
