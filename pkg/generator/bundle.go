package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wentf9/mesh-wizard/pkg/logger"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"github.com/wentf9/mesh-wizard/pkg/utils/file"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// 输出目录下的子目录
const (
	CloudflareArtifact = "cloudflare/config.yaml"
	FRPDir             = "frp"
	TraefikDir         = "traefik"
)

// Artifact 是一个待写出的配置文件,Path 相对输出目录
type Artifact struct {
	Path    string
	Content []byte
}

// Bundle 是一次完整渲染的结果,按路径排序
type Bundle struct {
	Artifacts []Artifact
}

// Paths 返回全部产物路径
func (b *Bundle) Paths() []string {
	paths := make([]string, len(b.Artifacts))
	for i, a := range b.Artifacts {
		paths[i] = a.Path
	}
	return paths
}

// Get 按路径查找产物
func (b *Bundle) Get(path string) (Artifact, bool) {
	for _, a := range b.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return Artifact{}, false
}

// GenerateAll 并发运行所有适用的生成器。
// 任一生成器失败时返回第一个错误,不产生任何产物
func GenerateAll(ctx context.Context, topo *models.Topology) (*Bundle, error) {
	log := logger.With("generator")
	g, ctx := errgroup.WithContext(ctx)

	// 每个生成器写自己的槽位,无需加锁
	var (
		cloudflare []Artifact
		frps       []Artifact
		frpc       []Artifact
		static     []Artifact
		dynamic    []Artifact
	)

	if topo.Tunnel != nil {
		g.Go(func() error {
			tunnel, err := Cloudflare(topo)
			if err != nil {
				return fmt.Errorf("cloudflare: %w", err)
			}
			content, err := MarshalYAML(tunnel)
			if err != nil {
				return err
			}
			cloudflare = []Artifact{{Path: CloudflareArtifact, Content: content}}
			return ctx.Err()
		})
	}
	g.Go(func() error {
		configs, err := FRPServers(topo)
		if err != nil {
			return fmt.Errorf("frps: %w", err)
		}
		frps = textArtifacts(FRPDir, configs)
		return ctx.Err()
	})
	g.Go(func() error {
		configs, err := FRPClients(topo)
		if err != nil {
			return fmt.Errorf("frpc: %w", err)
		}
		frpc = textArtifacts(FRPDir, configs)
		return ctx.Err()
	})
	g.Go(func() error {
		configs, err := TraefikStatic(topo)
		if err != nil {
			return fmt.Errorf("traefik static: %w", err)
		}
		static, err = yamlArtifacts(TraefikDir, configs)
		return err
	})
	g.Go(func() error {
		configs, err := TraefikDynamic(topo)
		if err != nil {
			return fmt.Errorf("traefik dynamic: %w", err)
		}
		dynamic, err = yamlArtifacts(TraefikDir, configs)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Debug("生成失败", "error", err)
		return nil, err
	}

	var all []Artifact
	for _, group := range [][]Artifact{cloudflare, frps, frpc, static, dynamic} {
		all = append(all, group...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	log.Debug("生成完成", "mesh", topo.Mesh.Name, "artifacts", len(all))
	return &Bundle{Artifacts: all}, nil
}

// Write 把所有产物写入 dir,自动创建子目录。onWrite 可为 nil,用于进度显示
func (b *Bundle) Write(dir string, onWrite func(Artifact)) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, a := range b.Artifacts {
		if err := file.WriteRecursive(filepath.Join(dir, filepath.FromSlash(a.Path)), a.Content, 0644); err != nil {
			return err
		}
		if onWrite != nil {
			onWrite(a)
		}
	}
	return nil
}

// MarshalYAML 以两空格缩进序列化
func MarshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func textArtifacts(dir string, configs map[string]string) []Artifact {
	out := make([]Artifact, 0, len(configs))
	for name, content := range configs {
		out = append(out, Artifact{Path: dir + "/" + name, Content: []byte(content)})
	}
	return out
}

func yamlArtifacts[T any](dir string, configs map[string]T) ([]Artifact, error) {
	out := make([]Artifact, 0, len(configs))
	for name, cfg := range configs {
		content, err := MarshalYAML(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, Artifact{Path: dir + "/" + name, Content: content})
	}
	return out, nil
}
