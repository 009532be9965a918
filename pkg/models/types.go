package models

import (
	"slices"
	"strings"
)

// 默认值
const (
	DefaultBindPort          = 7000
	DefaultVhostHTTPPort     = 19080
	DefaultVhostHTTPSPort    = 19443
	DefaultServerPort        = 7000
	DefaultRouterLogLevel    = "INFO"
	DefaultProviderDirectory = "/etc/traefik/dynamic"
	DefaultVia               = "traefik"
	ServiceURIPrefix         = "service://"
)

type ServiceType string

const (
	ServiceHTTP ServiceType = "http"
	ServiceTCP  ServiceType = "tcp"
)

type BackendType string

const (
	BackendFRPHTTP   BackendType = "frp_http"
	BackendFRPTCP    BackendType = "frp_tcp"
	BackendStaticURL BackendType = "static_url"
)

type MeshMetadata struct {
	Name        string
	Description string
}

// DNSMapping 把一个主机名经由某个入口指向服务,Target 在生成阶段才解析
type DNSMapping struct {
	Hostname   string
	Entrypoint string
	Target     string
}

// ServiceID 去掉 service:// 前缀后的服务 ID
func (m DNSMapping) ServiceID() string {
	return strings.TrimPrefix(m.Target, ServiceURIPrefix)
}

// TunnelConfig 对应 cloudflare 隧道配置
type TunnelConfig struct {
	TunnelName      string
	AccountID       string
	Zone            string
	CredentialsFile string
	DNS             []DNSMapping
}

// ProxyEndpoint 对应 frpc 中的一个 [[proxies]]
type ProxyEndpoint struct {
	Name          string
	Type          string
	LocalIP       string
	LocalPort     int
	RemotePort    *int
	CustomDomains []string
	Subdomain     string
}

// ProxyConfig 是节点上的 frp 配置,server 和 client 可以同时为 true
type ProxyConfig struct {
	Server bool
	Client bool

	// 服务端
	BindPort       int
	VhostHTTPPort  int
	VhostHTTPSPort int

	// 客户端
	ServerAddr string
	ServerPort int

	Token   string
	Proxies []ProxyEndpoint
}

type RouterEntrypoint struct {
	Name string
	Port int
}

// RouterConfig 是节点上的 traefik 配置
type RouterConfig struct {
	Enabled           bool
	Entrypoints       []RouterEntrypoint
	LogLevel          string
	ProviderDirectory string
}

// EntrypointPort 查找同名入口的端口
func (r *RouterConfig) EntrypointPort(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	for _, ep := range r.Entrypoints {
		if ep.Name == name {
			return ep.Port, true
		}
	}
	return 0, false
}

type Node struct {
	ID       string
	Role     string
	Location string
	PublicIP string
	LanIP    string
	Labels   []string

	// 未配置时为 nil
	Proxy  *ProxyConfig
	Router *RouterConfig
}

// IsProxyServer 节点是否作为 frps
func (n *Node) IsProxyServer() bool {
	return n.Proxy != nil && n.Proxy.Server
}

// IsProxyClient 节点是否作为 frpc
func (n *Node) IsProxyClient() bool {
	return n.Proxy != nil && n.Proxy.Client
}

// RouterEnabled 节点是否启用了 traefik
func (n *Node) RouterEnabled() bool {
	return n.Router != nil && n.Router.Enabled
}

// HasLabel 判断节点是否带有某个标签
func (n *Node) HasLabel(label string) bool {
	return slices.Contains(n.Labels, label)
}

type ServiceRouter struct {
	Rule        string
	Entrypoints []string
	Service     string
	TLS         bool
}

type ServiceBackend struct {
	Type      BackendType
	ProxyName string
	URL       string
}

type ServiceTarget struct {
	Node string
	IP   string
	Port int
}

type Service struct {
	ID          string
	Type        ServiceType
	Node        string
	Via         string
	Router      *ServiceRouter
	Backend     *ServiceBackend
	Target      *ServiceTarget
	Description string
}

// TLSEnabled 服务路由是否声明了 tls
func (s *Service) TLSEnabled() bool {
	return s.Router != nil && s.Router.TLS
}

// BackendIs 判断后端类型
func (s *Service) BackendIs(t BackendType) bool {
	return s.Backend != nil && s.Backend.Type == t
}
