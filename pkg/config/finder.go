package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	LocalFileName = ".mesh-wizard.ini"
	HomeDirName   = ".mesh-wizard"
	HomeFileName  = "config.ini"
)

// Locate 按顺序查找配置文件: 显式指定的路径, ./.mesh-wizard.ini, $HOME/.mesh-wizard/config.ini。
// 显式指定的文件不存在时报错,其余位置都不存在时返回空字符串
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, candidate := range candidates() {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config file %s: %w", candidate, err)
		}
	}
	return "", nil
}

func candidates() []string {
	paths := []string{LocalFileName}
	if dir := homeDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, HomeFileName))
	}
	return paths
}

// homeDir 返回 $HOME/.mesh-wizard,拿不到 HOME 时为空
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, HomeDirName)
}

func defaultKeyFile() string {
	if dir := homeDir(); dir != "" {
		return filepath.Join(dir, DefaultKeyFile)
	}
	return DefaultKeyFile
}
