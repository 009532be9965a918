package models

import (
	"errors"
	"fmt"
	"strings"
)

// 错误分类,调用方通过 errors.Is 判断
var (
	ErrMalformedDocument = errors.New("malformed mesh document")
	ErrSchemaViolation   = errors.New("mesh schema validation failed")
	ErrUnknownReference  = errors.New("unknown reference")
	ErrConfiguration     = errors.New("configuration error")
)

// Violation 是一条结构校验错误,Path 由 key(string) 和下标(int) 组成
type Violation struct {
	Path    []any
	Message string
}

// PathString 以 a/0/b 的形式返回路径,顶层为 (root)
func (v Violation) PathString() string {
	if len(v.Path) == 0 {
		return "(root)"
	}
	parts := make([]string, len(v.Path))
	for i, p := range v.Path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "/")
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.PathString(), v.Message)
}

// SchemaViolationError 汇总一次校验中发现的全部错误
type SchemaViolationError struct {
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}

func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// UnknownReferenceError 表示引用了不存在的节点或服务
type UnknownReferenceError struct {
	Kind string // "node" 或 "service"
	ID   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s '%s'", e.Kind, e.ID)
}

func (e *UnknownReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}

// ConfigurationError 表示生成阶段才发现的必填项缺失
type ConfigurationError struct {
	Subject string // 出错的对象,例如 "node vps"
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MalformedError 记录出问题的来源(文件路径等)
type MalformedError struct {
	Source string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("mesh file %s must be a mapping at the top level", e.Source)
	}
	return fmt.Sprintf("mesh file %s: %v", e.Source, e.Err)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
