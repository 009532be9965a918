package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Build 从已通过校验的原始文档构建拓扑。
// 只做类型转换和默认值填充,节点/服务之间的引用在生成阶段才检查。
func Build(doc map[string]any) (*Topology, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, &MalformedError{Source: "document", Err: err}
	}
	var file MeshFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &MalformedError{Source: "document", Err: err}
	}
	return FromFile(&file), nil
}

// FromFile 把解码后的 MeshFile 转换为拓扑
func FromFile(f *MeshFile) *Topology {
	topo := newTopology(
		MeshMetadata{Name: f.Mesh.Name, Description: f.Mesh.Description},
		buildTunnel(f.Cloudflare),
	)
	for i := range f.Nodes {
		topo.addNode(buildNode(&f.Nodes[i]))
	}
	for i := range f.Services {
		topo.addService(buildService(&f.Services[i]))
	}
	return topo
}

func buildTunnel(spec *CloudflareSpec) *TunnelConfig {
	if spec == nil {
		return nil
	}
	tunnel := &TunnelConfig{
		TunnelName:      spec.TunnelName,
		AccountID:       spec.AccountID,
		Zone:            spec.Zone,
		CredentialsFile: spec.CredentialsFile,
	}
	if tunnel.CredentialsFile == "" {
		tunnel.CredentialsFile = fmt.Sprintf("/etc/cloudflared/%s.json", spec.TunnelName)
	}
	for _, d := range spec.DNS {
		tunnel.DNS = append(tunnel.DNS, DNSMapping{
			Hostname:   d.Hostname,
			Entrypoint: d.Entrypoint,
			Target:     d.Target,
		})
	}
	return tunnel
}

func buildNode(spec *NodeSpec) *Node {
	return &Node{
		ID:       spec.ID,
		Role:     spec.Role,
		Location: spec.Location,
		PublicIP: spec.PublicIP,
		LanIP:    spec.LanIP,
		Labels:   append([]string(nil), spec.Labels...),
		Proxy:    buildProxy(spec.FRP),
		Router:   buildRouter(spec.Traefik),
	}
}

func buildProxy(spec *FRPSpec) *ProxyConfig {
	if spec == nil {
		return nil
	}
	cfg := &ProxyConfig{
		Server:         spec.Server,
		Client:         spec.Client,
		BindPort:       orDefault(spec.BindPort, DefaultBindPort),
		VhostHTTPPort:  orDefault(spec.VhostHTTPPort, DefaultVhostHTTPPort),
		VhostHTTPSPort: orDefault(spec.VhostHTTPSPort, DefaultVhostHTTPSPort),
		ServerAddr:     spec.ServerAddr,
		ServerPort:     orDefault(spec.ServerPort, DefaultServerPort),
		Token:          spec.Token,
	}
	for _, p := range spec.Proxies {
		endpoint := ProxyEndpoint{
			Name:          p.Name,
			Type:          p.Type,
			LocalIP:       p.LocalIP,
			LocalPort:     p.LocalPort,
			CustomDomains: append([]string(nil), p.CustomDomains...),
			Subdomain:     p.Subdomain,
		}
		if p.RemotePort != nil {
			port := *p.RemotePort
			endpoint.RemotePort = &port
		}
		cfg.Proxies = append(cfg.Proxies, endpoint)
	}
	return cfg
}

func buildRouter(spec *TraefikSpec) *RouterConfig {
	if spec == nil {
		return nil
	}
	cfg := &RouterConfig{
		Enabled:           spec.Enabled,
		Entrypoints:       []RouterEntrypoint{},
		LogLevel:          spec.LogLevel,
		ProviderDirectory: spec.ProviderDirectory,
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultRouterLogLevel
	}
	if cfg.ProviderDirectory == "" {
		cfg.ProviderDirectory = DefaultProviderDirectory
	}
	for _, ep := range spec.Entrypoints {
		cfg.Entrypoints = append(cfg.Entrypoints, RouterEntrypoint{Name: ep.Name, Port: ep.Port})
	}
	return cfg
}

func buildService(spec *ServiceSpec) *Service {
	svc := &Service{
		ID:          spec.ID,
		Type:        ServiceType(spec.Type),
		Node:        spec.Node,
		Via:         spec.Via,
		Description: spec.Description,
	}
	if svc.Via == "" {
		svc.Via = DefaultVia
	}
	if r := spec.Router; r != nil {
		svc.Router = &ServiceRouter{
			Rule:        r.Rule,
			Entrypoints: append([]string{}, r.Entrypoints...),
			Service:     r.Service,
			TLS:         r.TLS,
		}
	}
	if b := spec.Backend; b != nil {
		svc.Backend = &ServiceBackend{Type: BackendType(b.Type), ProxyName: b.ProxyName, URL: b.URL}
	}
	if t := spec.Target; t != nil {
		svc.Target = &ServiceTarget{Node: t.Node, IP: t.IP, Port: t.Port}
	}
	return svc
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
