package generator

import (
	"fmt"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

const (
	TraefikDynamicSuffix = "-traefik-dynamic.yaml"

	defaultHTTPRule        = "PathPrefix(`/`)"
	defaultTCPRule         = "HostSNI(`*`)"
	defaultHTTPEntrypoint  = "websecure"
	defaultTCPEntrypoint   = "tcp"
	fallbackHTTPBackendURL = "http://127.0.0.1:8000"
	fallbackTCPBackendAddr = "127.0.0.1:9000"
	loopback               = "127.0.0.1"
)

// TraefikDynamicFile 对应 file provider 读取的动态配置。
// 两个分组都为空时两者都输出为空映射,否则只输出有服务的分组
type TraefikDynamicFile struct {
	HTTP *Section `yaml:"http,omitempty"`
	TCP  *Section `yaml:"tcp,omitempty"`
}

type Section struct {
	Routers  map[string]Router        `yaml:"routers,omitempty"`
	Services map[string]RouterBackend `yaml:"services,omitempty"`
}

type Router struct {
	Rule        string    `yaml:"rule"`
	EntryPoints []string  `yaml:"entryPoints"`
	Service     string    `yaml:"service"`
	TLS         *TLSBlock `yaml:"tls,omitempty"`
}

// TLSBlock 空对象表示使用默认设置启用 TLS
type TLSBlock struct{}

type RouterBackend struct {
	LoadBalancer LoadBalancer `yaml:"loadBalancer"`
}

type LoadBalancer struct {
	Servers []Server `yaml:"servers"`
}

type Server struct {
	URL     string `yaml:"url,omitempty"`
	Address string `yaml:"address,omitempty"`
}

// TraefikDynamic 为每个启用 traefik 的节点生成路由和后端。
// 只处理 via=traefik 的服务,其他 via 由别的路由机制负责
func TraefikDynamic(topo *models.Topology) (map[string]*TraefikDynamicFile, error) {
	if err := checkServiceNodes(topo); err != nil {
		return nil, err
	}
	configs := make(map[string]*TraefikDynamicFile)
	for _, node := range topo.Nodes() {
		if !node.RouterEnabled() {
			continue
		}
		configs[node.ID+TraefikDynamicSuffix] = renderDynamic(node, topo.ServicesOn(node.ID))
	}
	return configs, nil
}

// checkServiceNodes 服务引用的节点必须存在,否则服务会从所有产物中消失
func checkServiceNodes(topo *models.Topology) error {
	for _, svc := range topo.Services() {
		if _, err := topo.GetNode(svc.Node); err != nil {
			return fmt.Errorf("service %s: %w", svc.ID, err)
		}
	}
	return nil
}

func renderDynamic(node *models.Node, services []*models.Service) *TraefikDynamicFile {
	httpSection := &Section{Routers: map[string]Router{}, Services: map[string]RouterBackend{}}
	tcpSection := &Section{Routers: map[string]Router{}, Services: map[string]RouterBackend{}}

	for _, svc := range services {
		if svc.Via != models.DefaultVia {
			continue
		}
		switch svc.Type {
		case models.ServiceHTTP:
			addRoute(httpSection, svc, defaultHTTPRule, defaultHTTPEntrypoint, Server{URL: httpBackend(node, svc)})
		case models.ServiceTCP:
			addRoute(tcpSection, svc, defaultTCPRule, defaultTCPEntrypoint, Server{Address: tcpBackend(node, svc)})
		}
	}

	out := &TraefikDynamicFile{}
	if len(httpSection.Routers) > 0 {
		out.HTTP = httpSection
	}
	if len(tcpSection.Routers) > 0 {
		out.TCP = tcpSection
	}
	if out.HTTP == nil && out.TCP == nil {
		out.HTTP, out.TCP = &Section{}, &Section{}
	}
	return out
}

func addRoute(section *Section, svc *models.Service, rule, entrypoint string, server Server) {
	router := Router{
		Rule:        rule,
		EntryPoints: []string{entrypoint},
		Service:     svc.ID + "-service",
	}
	if r := svc.Router; r != nil {
		if r.Rule != "" {
			router.Rule = r.Rule
		}
		if len(r.Entrypoints) > 0 {
			router.EntryPoints = append([]string(nil), r.Entrypoints...)
		}
		if r.TLS {
			router.TLS = &TLSBlock{}
		}
	}
	section.Routers[svc.ID+"-router"] = router
	section.Services[router.Service] = RouterBackend{LoadBalancer: LoadBalancer{Servers: []Server{server}}}
}

func httpBackend(node *models.Node, svc *models.Service) string {
	if svc.BackendIs(models.BackendStaticURL) && svc.Backend.URL != "" {
		return svc.Backend.URL
	}
	if svc.BackendIs(models.BackendFRPHTTP) && node.Proxy != nil {
		return fmt.Sprintf("http://%s:%d", loopback, node.Proxy.VhostHTTPPort)
	}
	if t := svc.Target; t != nil && t.IP != "" && t.Port != 0 {
		return fmt.Sprintf("http://%s:%d", t.IP, t.Port)
	}
	return fallbackHTTPBackendURL
}

func tcpBackend(node *models.Node, svc *models.Service) string {
	if svc.BackendIs(models.BackendFRPTCP) && node.Proxy != nil {
		return fmt.Sprintf("%s:%d", loopback, node.Proxy.VhostHTTPSPort)
	}
	if t := svc.Target; t != nil && t.IP != "" && t.Port != 0 {
		return fmt.Sprintf("%s:%d", t.IP, t.Port)
	}
	return fallbackTCPBackendAddr
}
