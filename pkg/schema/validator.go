package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/wentf9/mesh-wizard/pkg/models"
)

//go:embed mesh-schema.json
var meshSchema []byte

// Validator 解释一份 JSON Schema 文档并收集所有违规项。
// 支持的关键字: type, required, properties, items, enum, minLength, minimum, maximum
type Validator struct {
	root *jsonschema.Schema
}

// New 从 JSON Schema 文档创建校验器
func New(schemaJSON []byte) (*Validator, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(schemaJSON, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &Validator{root: &s}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default 返回使用内置 mesh schema 的校验器
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New(meshSchema)
	})
	return defaultValidator, defaultErr
}

// Document 返回内置的 schema 原文
func Document() []byte {
	return slices.Clone(meshSchema)
}

// Validate 返回按路径排序的全部违规项,合法文档返回空切片
func (v *Validator) Validate(doc any) []models.Violation {
	var out []models.Violation
	walk(v.root, doc, nil, &out)
	sort.SliceStable(out, func(i, j int) bool {
		return comparePath(out[i].Path, out[j].Path) < 0
	})
	return out
}

// Check 有违规项时返回 *models.SchemaViolationError
func (v *Validator) Check(doc any) error {
	if violations := v.Validate(doc); len(violations) > 0 {
		return &models.SchemaViolationError{Violations: violations}
	}
	return nil
}

func walk(s *jsonschema.Schema, value any, path []any, out *[]models.Violation) {
	if s == nil {
		return
	}
	report := func(format string, args ...any) {
		*out = append(*out, models.Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if types := allowedTypes(s); len(types) > 0 && !slices.ContainsFunc(types, func(t string) bool { return hasType(t, value) }) {
		report("%s is not of type %s", describe(value), strings.Join(quoteAll(types), ", "))
		// 类型不对时不再深入检查
		return
	}

	if len(s.Enum) > 0 && !slices.ContainsFunc(s.Enum, func(e any) bool { return equalValue(e, value) }) {
		report("%s is not one of %s", describe(value), describeEnum(s.Enum))
	}

	switch val := value.(type) {
	case string:
		if s.MinLength != nil && len([]rune(val)) < *s.MinLength {
			if *s.MinLength == 1 {
				report("%s should be non-empty", describe(value))
			} else {
				report("%s is shorter than %d", describe(value), *s.MinLength)
			}
		}
	case map[string]any:
		for _, key := range s.Required {
			if _, ok := val[key]; !ok {
				report("'%s' is a required property", key)
			}
		}
		keys := make([]string, 0, len(s.Properties))
		for key := range s.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child, ok := val[key]
			if !ok {
				continue
			}
			walk(s.Properties[key], child, appendPath(path, key), out)
		}
	case []any:
		for i, item := range val {
			walk(s.Items, item, appendPath(path, i), out)
		}
	default:
		if f, ok := toFloat(value); ok {
			if s.Minimum != nil && f < *s.Minimum {
				report("%s is less than the minimum of %v", describe(value), *s.Minimum)
			}
			if s.Maximum != nil && f > *s.Maximum {
				report("%s is greater than the maximum of %v", describe(value), *s.Maximum)
			}
		}
	}
}

func appendPath(path []any, elem any) []any {
	next := make([]any, len(path), len(path)+1)
	copy(next, path)
	return append(next, elem)
}

func allowedTypes(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}
	return s.Types
}

func hasType(t string, v any) bool {
	switch t {
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "null":
		return v == nil
	case "number":
		_, ok := toFloat(v)
		return ok
	case "integer":
		f, ok := toFloat(v)
		return ok && f == math.Trunc(f)
	}
	return false
}

func toFloat(v any) (float64, bool) {
	if _, isBool := v.(bool); isBool || v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func equalValue(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return fmt.Sprintf("'%s'", val)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprint(v)
}

func describeEnum(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = describe(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "'" + s + "'"
	}
	return out
}

// comparePath 逐段比较,下标按数值比较,其余按字符串比较,前缀较短者在前
func comparePath(a, b []any) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ai, aInt := a[i].(int)
		bi, bInt := b[i].(int)
		if aInt && bInt {
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(fmt.Sprint(a[i]), fmt.Sprint(b[i])); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
