package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

type Store interface {
	Load() (*Settings, error)
	Save(s *Settings) error
}

type iniStore struct {
	Path string
}

// NewStore 创建读写指定 ini 文件的 Store,路径为空时 Load 只返回默认值
func NewStore(path string) Store {
	return &iniStore{Path: path}
}

// Load 读取 ini 文件,缺失的键使用默认值
func (s *iniStore) Load() (*Settings, error) {
	settings := Defaults()
	if s.Path == "" {
		return settings, nil
	}
	cfg, err := ini.Load(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", s.Path, err)
	}
	settings.Path = s.Path

	section := cfg.Section("default")
	settings.Default.OutDir = section.Key("out_dir").MustString(settings.Default.OutDir)
	settings.Default.LogLevel = section.Key("log_level").MustString(settings.Default.LogLevel)

	section = cfg.Section("ai")
	settings.AI.Model = section.Key("model").MustString(settings.AI.Model)
	settings.AI.APIKeyEnv = section.Key("api_key_env").MustString(settings.AI.APIKeyEnv)

	section = cfg.Section("secret")
	settings.Secret.KeyFile = expandHome(section.Key("key_file").MustString(settings.Secret.KeyFile))
	return settings, nil
}

// Save 写回 ini 文件,已有文件中的其他键保持不变
func (s *iniStore) Save(settings *Settings) error {
	if s.Path == "" {
		return fmt.Errorf("save config: no path")
	}
	cfg := ini.Empty()
	if _, err := os.Stat(s.Path); err == nil {
		if cfg, err = ini.Load(s.Path); err != nil {
			return fmt.Errorf("load config %s: %w", s.Path, err)
		}
	}
	cfg.Section("default").Key("out_dir").SetValue(settings.Default.OutDir)
	cfg.Section("default").Key("log_level").SetValue(settings.Default.LogLevel)
	cfg.Section("ai").Key("model").SetValue(settings.AI.Model)
	cfg.Section("ai").Key("api_key_env").SetValue(settings.AI.APIKeyEnv)
	cfg.Section("secret").Key("key_file").SetValue(settings.Secret.KeyFile)

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := cfg.SaveTo(s.Path); err != nil {
		return fmt.Errorf("save config %s: %w", s.Path, err)
	}
	return nil
}

// Load 查找并读取配置文件,找不到时返回默认值
func Load(explicit string) (*Settings, error) {
	path, err := Locate(explicit)
	if err != nil {
		return nil, err
	}
	return NewStore(path).Load()
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
