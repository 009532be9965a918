package loader

// Document 是原始文档的通用树: map[string]any / []any / 标量
type Document = map[string]any

// Merge 把 fragment 深度合并到 base 并返回 base。
// 列表按顺序拼接,映射递归合并,其它值由后者覆盖。
func Merge(base, fragment Document) Document {
	if base == nil {
		base = Document{}
	}
	for key, value := range fragment {
		existing, ok := base[key]
		if !ok {
			base[key] = value
			continue
		}
		switch cur := existing.(type) {
		case []any:
			if next, ok := value.([]any); ok {
				merged := make([]any, 0, len(cur)+len(next))
				merged = append(merged, cur...)
				base[key] = append(merged, next...)
				continue
			}
		case map[string]any:
			if next, ok := value.(map[string]any); ok {
				base[key] = Merge(cur, next)
				continue
			}
		}
		base[key] = value
	}
	return base
}

// normalize 把 yaml 解出的 map[any]any 统一转换为 map[string]any
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[toKey(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	}
	return v
}
