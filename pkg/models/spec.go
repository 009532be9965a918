package models

// MeshFile 对应 mesh yaml 文件的顶层结构。
// 构建拓扑时先解码到这里,init / ai-suggest 也用它按字段顺序输出 yaml。
type MeshFile struct {
	Mesh       MeshSpec        `yaml:"mesh"`
	Cloudflare *CloudflareSpec `yaml:"cloudflare,omitempty"`
	Nodes      []NodeSpec      `yaml:"nodes"`
	Services   []ServiceSpec   `yaml:"services"`
}

type MeshSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type CloudflareSpec struct {
	AccountID       string    `yaml:"account_id,omitempty"`
	TunnelName      string    `yaml:"tunnel_name"`
	Zone            string    `yaml:"zone,omitempty"`
	CredentialsFile string    `yaml:"credentials_file,omitempty"`
	DNS             []DNSSpec `yaml:"dns,omitempty"`
}

type DNSSpec struct {
	Hostname   string `yaml:"hostname"`
	Entrypoint string `yaml:"entrypoint"`
	Target     string `yaml:"target"`
}

type NodeSpec struct {
	ID       string       `yaml:"id"`
	Role     string       `yaml:"role"`
	Location string       `yaml:"location,omitempty"`
	PublicIP string       `yaml:"public_ip,omitempty"`
	LanIP    string       `yaml:"lan_ip,omitempty"`
	Labels   []string     `yaml:"labels,omitempty"`
	FRP      *FRPSpec     `yaml:"frp,omitempty"`
	Traefik  *TraefikSpec `yaml:"traefik,omitempty"`
}

type FRPSpec struct {
	Server         bool           `yaml:"server,omitempty"`
	Client         bool           `yaml:"client,omitempty"`
	BindPort       int            `yaml:"bind_port,omitempty"`
	VhostHTTPPort  int            `yaml:"vhost_http_port,omitempty"`
	VhostHTTPSPort int            `yaml:"vhost_https_port,omitempty"`
	ServerAddr     string         `yaml:"server_addr,omitempty"`
	ServerPort     int            `yaml:"server_port,omitempty"`
	Token          string         `yaml:"token,omitempty"`
	Proxies        []FRPProxySpec `yaml:"proxies,omitempty"`
}

type FRPProxySpec struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	LocalIP       string   `yaml:"local_ip"`
	LocalPort     int      `yaml:"local_port"`
	RemotePort    *int     `yaml:"remote_port,omitempty"`
	CustomDomains []string `yaml:"custom_domains,omitempty"`
	Subdomain     string   `yaml:"subdomain,omitempty"`
}

type TraefikSpec struct {
	Enabled           bool             `yaml:"enabled"`
	Entrypoints       []EntrypointSpec `yaml:"entrypoints,omitempty"`
	LogLevel          string           `yaml:"log_level,omitempty"`
	ProviderDirectory string           `yaml:"provider_directory,omitempty"`
}

type EntrypointSpec struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type ServiceSpec struct {
	ID          string       `yaml:"id"`
	Type        string       `yaml:"type"`
	Node        string       `yaml:"node"`
	Via         string       `yaml:"via,omitempty"`
	Router      *RouterSpec  `yaml:"router,omitempty"`
	Backend     *BackendSpec `yaml:"backend,omitempty"`
	Target      *TargetSpec  `yaml:"target,omitempty"`
	Description string       `yaml:"description,omitempty"`
}

type RouterSpec struct {
	Rule        string   `yaml:"rule,omitempty"`
	Entrypoints []string `yaml:"entrypoints,omitempty"`
	Service     string   `yaml:"service,omitempty"`
	TLS         bool     `yaml:"tls,omitempty"`
}

type BackendSpec struct {
	Type      string `yaml:"type"`
	ProxyName string `yaml:"proxy_name,omitempty"`
	URL       string `yaml:"url,omitempty"`
}

type TargetSpec struct {
	Node string `yaml:"node,omitempty"`
	IP   string `yaml:"ip,omitempty"`
	Port int    `yaml:"port,omitempty"`
}
