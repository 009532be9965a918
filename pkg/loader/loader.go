package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wentf9/mesh-wizard/pkg/crypto"
	"github.com/wentf9/mesh-wizard/pkg/logger"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"github.com/wentf9/mesh-wizard/pkg/schema"
	"gopkg.in/yaml.v3"
)

// FragmentPattern 目录模式下参与合并的文件
const FragmentPattern = "*.y*ml"

type options struct {
	validator *schema.Validator
	crypter   *crypto.Crypter
}

type Option func(*options)

// WithValidator 使用自定义 schema 校验器,默认使用内置 schema
func WithValidator(v *schema.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithCrypter 用于解密 frp token 中 ENC: 开头的密文
func WithCrypter(c *crypto.Crypter) Option {
	return func(o *options) {
		o.crypter = c
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Read 读取单个文件或合并整个目录,不做校验
func Read(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	if info.IsDir() {
		return loadDir(path)
	}
	return loadFile(path)
}

// LoadRaw 读取单个文件或合并整个目录,并做 schema 校验
func LoadRaw(path string, opts ...Option) (Document, error) {
	o := newOptions(opts)
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}

	v := o.validator
	if v == nil {
		if v, err = schema.Default(); err != nil {
			return nil, err
		}
	}
	if err := v.Check(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadTopology 读取、校验、解密并构建拓扑
func LoadTopology(path string, opts ...Option) (*models.Topology, error) {
	doc, err := LoadRaw(path, opts...)
	if err != nil {
		return nil, err
	}
	topo, err := FromDocument(doc, opts...)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debug("topology loaded", "path", path, "mesh", topo.Mesh.Name,
		"nodes", len(topo.NodeIDs()), "services", len(topo.ServiceIDs()))
	return topo, nil
}

// FromDocument 从已校验的文档构建拓扑,会就地解密 frp token 中的 ENC: 密文
func FromDocument(doc Document, opts ...Option) (*models.Topology, error) {
	o := newOptions(opts)
	if err := decryptSecrets(doc, o.crypter); err != nil {
		return nil, err
	}
	return models.Build(doc)
}

// Parse 解析一段 yaml,顶层必须是映射,空内容视为空映射
func Parse(source string, data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &models.MalformedError{Source: source, Err: err}
	}
	if raw == nil {
		return Document{}, nil
	}
	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &models.MalformedError{Source: source}
	}
	return doc, nil
}

func loadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mesh file: %w", err)
	}
	return Parse(path, data)
}

// loadDir 按文件名字典序合并目录下的 yaml 片段
func loadDir(dir string) (Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read mesh directory: %w", err)
	}
	doc := Document{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(FragmentPattern, entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fragment, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Logger.Debug("merging fragment", "file", path)
		doc = Merge(doc, fragment)
	}
	return doc, nil
}

// decryptSecrets 只解密 nodes[*].frp.token,其他字段中 ENC: 开头的字符串原样保留
func decryptSecrets(doc Document, c *crypto.Crypter) error {
	nodes, _ := doc["nodes"].([]any)
	for i, item := range nodes {
		node, _ := item.(map[string]any)
		frp, _ := node["frp"].(map[string]any)
		token, ok := frp["token"].(string)
		if !ok || !crypto.IsEncrypted(token) {
			continue
		}
		plain, err := decryptValue(token, c, []any{"nodes", i, "frp", "token"})
		if err != nil {
			return err
		}
		frp["token"] = plain
	}
	return nil
}

func decryptValue(s string, c *crypto.Crypter, path []any) (string, error) {
	subject := models.Violation{Path: path}.PathString()
	if c == nil {
		return "", &models.ConfigurationError{Subject: subject, Reason: "encrypted value found but no key configured"}
	}
	plain, err := c.Decrypt(s)
	if err != nil {
		return "", &models.ConfigurationError{Subject: subject, Reason: err.Error()}
	}
	return plain, nil
}

func toKey(k any) string {
	return fmt.Sprint(k)
}
