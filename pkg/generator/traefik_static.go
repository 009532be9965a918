package generator

import (
	"fmt"

	"github.com/wentf9/mesh-wizard/pkg/models"
	"gopkg.in/yaml.v3"
)

const TraefikStaticSuffix = "-traefik-static.yaml"

type TraefikStaticFile struct {
	EntryPoints EntryPoints `yaml:"entryPoints"`
	Providers   Providers   `yaml:"providers"`
	Log         LogBlock    `yaml:"log"`
}

type EntryPoint struct {
	Address string `yaml:"address"`
}

type NamedEntryPoint struct {
	Name string
	EntryPoint
}

// EntryPoints 按声明顺序输出为 yaml 映射
type EntryPoints []NamedEntryPoint

// Set 同名入口原位覆盖
func (e *EntryPoints) Set(name string, ep EntryPoint) {
	for i := range *e {
		if (*e)[i].Name == name {
			(*e)[i].EntryPoint = ep
			return
		}
	}
	*e = append(*e, NamedEntryPoint{Name: name, EntryPoint: ep})
}

func (e EntryPoints) Get(name string) (EntryPoint, bool) {
	for _, ep := range e {
		if ep.Name == name {
			return ep.EntryPoint, true
		}
	}
	return EntryPoint{}, false
}

func (e EntryPoints) Names() []string {
	names := make([]string, len(e))
	for i, ep := range e {
		names[i] = ep.Name
	}
	return names
}

func (e EntryPoints) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, ep := range e {
		var value yaml.Node
		if err := value.Encode(ep.EntryPoint); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ep.Name}
		node.Content = append(node.Content, key, &value)
	}
	return node, nil
}

type Providers struct {
	File FileProvider `yaml:"file"`
}

type FileProvider struct {
	Directory string `yaml:"directory"`
	Watch     bool   `yaml:"watch"`
}

type LogBlock struct {
	Level string `yaml:"level"`
}

// 未声明入口时使用的默认入口
var defaultEntryPoints = []models.RouterEntrypoint{
	{Name: "web", Port: 80},
	{Name: "websecure", Port: 443},
}

// TraefikStatic 为每个启用 traefik 的节点生成静态配置
func TraefikStatic(topo *models.Topology) (map[string]*TraefikStaticFile, error) {
	configs := make(map[string]*TraefikStaticFile)
	for _, node := range topo.Nodes() {
		if !node.RouterEnabled() {
			continue
		}
		configs[node.ID+TraefikStaticSuffix] = renderStatic(node.Router)
	}
	return configs, nil
}

func renderStatic(router *models.RouterConfig) *TraefikStaticFile {
	declared := router.Entrypoints
	if len(declared) == 0 {
		declared = defaultEntryPoints
	}
	entryPoints := make(EntryPoints, 0, len(declared))
	for _, ep := range declared {
		entryPoints.Set(ep.Name, EntryPoint{Address: fmt.Sprintf(":%d", ep.Port)})
	}

	directory := router.ProviderDirectory
	if directory == "" {
		directory = models.DefaultProviderDirectory
	}
	level := router.LogLevel
	if level == "" {
		level = models.DefaultRouterLogLevel
	}
	return &TraefikStaticFile{
		EntryPoints: entryPoints,
		Providers:   Providers{File: FileProvider{Directory: directory, Watch: true}},
		Log:         LogBlock{Level: level},
	}
}
