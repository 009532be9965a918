package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const KeySize = 32 // AES-256 需要 32 字节密钥

// ErrKeyExists 生成密钥时目标文件已存在
var ErrKeyExists = errors.New("key file already exists")

// LoadKey 读取密钥文件
func LoadKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key file size in '%s': expected %d, got %d", path, KeySize, len(key))
	}
	return key, nil
}

// GenerateKey 生成随机密钥并保存,权限 0600。
// overwrite 为 false 且文件已存在时返回 ErrKeyExists
func GenerateKey(path string, overwrite bool) ([]byte, error) {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, path)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to save key file: %w", err)
	}
	return key, nil
}

// LoadOrGenerateKey 密钥文件不存在时自动生成
func LoadOrGenerateKey(path string) ([]byte, error) {
	key, err := LoadKey(path)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return GenerateKey(path, false)
}
