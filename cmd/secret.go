package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/cmd/utils"
	"github.com/wentf9/mesh-wizard/global"
	"github.com/wentf9/mesh-wizard/pkg/config"
	"github.com/wentf9/mesh-wizard/pkg/crypto"
)

func NewCmdSecret() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "管理 mesh 文件中的加密字段",
		Long: `节点的 frp.token 以 ENC: 开头时会在加载时用密钥文件解密,
可以把 token 加密后再提交到仓库。其他字段中的 ENC: 字符串按原文处理。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewCmdSecretKeygen())
	cmd.AddCommand(NewCmdSecretEncrypt())
	return cmd
}

func NewCmdSecretKeygen() *cobra.Command {
	var force, save bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "生成新的密钥文件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := keyFile()
			if _, err := crypto.GenerateKey(path, force); err != nil {
				if errors.Is(err, crypto.ErrKeyExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "密钥已保存到 %s\n", path)
			if !save {
				return nil
			}
			target := settings.Path
			if target == "" {
				target = config.LocalFileName
			}
			updated := *settings
			updated.Secret.KeyFile = path
			if err := config.NewStore(target).Save(&updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已写入配置文件 %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "覆盖已存在的密钥文件")
	cmd.Flags().BoolVar(&save, "save", false, "把密钥路径写入配置文件 [secret] key_file")
	return cmd
}

func NewCmdSecretEncrypt() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [value]",
		Short: "加密一个值,输出可直接写入 mesh 文件的 ENC: 字符串",
		Long: `未提供参数时从终端读取(不回显),非交互环境下从标准输入读取。
密钥文件不存在时会自动生成。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := secretValue(cmd, args)
			if err != nil {
				return err
			}
			if value == "" {
				return errors.New("empty value")
			}
			key, err := crypto.LoadOrGenerateKey(keyFile())
			if err != nil {
				return err
			}
			c, err := crypto.NewCrypter(key)
			if err != nil {
				return err
			}
			enc, err := c.Encrypt(value)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), enc)
			return nil
		},
	}
}

func secretValue(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if global.IsTerminal {
		return utils.ReadPasswordFromTerminal(cmd.ErrOrStderr(), "Value: ")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(NewCmdSecret())
}
