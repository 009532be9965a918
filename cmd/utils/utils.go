package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/wentf9/mesh-wizard/pkg/crypto"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/logger"
	"golang.org/x/term"
)

// LoaderOptions 密钥文件存在时附带解密器,不存在时 ENC: 字段会在加载时报错
func LoaderOptions(keyFile string) ([]loader.Option, error) {
	if keyFile == "" {
		return nil, nil
	}
	key, err := crypto.LoadKey(keyFile)
	if errors.Is(err, os.ErrNotExist) {
		logger.Logger.Debug("密钥文件不存在,跳过解密", "path", keyFile)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := crypto.NewCrypter(key)
	if err != nil {
		return nil, err
	}
	return []loader.Option{loader.WithCrypter(c)}, nil
}

// Confirm 在终端中询问是否继续,只有输入 y/yes 时返回 true
func Confirm(question string) bool {
	completer := func(d prompt.Document) []prompt.Suggest {
		suggestions := []prompt.Suggest{
			{Text: "yes", Description: "继续"},
			{Text: "no", Description: "取消"},
		}
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	}
	answer := prompt.Input(question+" [y/N] ", completer)
	return IsYes(answer)
}

func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// ReadPasswordFromTerminal 从终端安全地读取密码
func ReadPasswordFromTerminal(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w) // 打印换行符，因为 ReadPassword 不会打印换行符
	if err != nil {
		return "", err
	}
	return string(password), nil
}
