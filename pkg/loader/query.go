package loader

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Query 在合并后的原始文档上执行 JSONPath,用于排查目录合并结果
func Query(doc Document, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}
	return x.Get(map[string]any(doc)), nil
}
