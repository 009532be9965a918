package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteRecursive 创建上级目录后写入文件,已存在则覆盖
func WriteRecursive(filePath string, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(filePath), err)
	}
	if err := os.WriteFile(filePath, content, perm); err != nil {
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	return nil
}

// Exists 判断路径是否存在,Stat 出现其他错误时返回该错误
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
