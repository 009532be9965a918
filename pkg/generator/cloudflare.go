package generator

import (
	"fmt"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

// NotFoundService cloudflared 要求的兜底规则
const NotFoundService = "http_status:404"

// TunnelFile 对应 cloudflared 的 config.yaml
type TunnelFile struct {
	Tunnel          string        `yaml:"tunnel"`
	CredentialsFile string        `yaml:"credentials-file"`
	Ingress         []IngressRule `yaml:"ingress"`
}

type IngressRule struct {
	Hostname string `yaml:"hostname,omitempty"`
	Service  string `yaml:"service"`
}

// Cloudflare 生成隧道入口配置,最后一条规则固定为 404 兜底
func Cloudflare(topo *models.Topology) (*TunnelFile, error) {
	tunnel := topo.Tunnel
	if tunnel == nil {
		return nil, &models.ConfigurationError{Reason: "mesh does not define Cloudflare configuration"}
	}
	ingress := make([]IngressRule, 0, len(tunnel.DNS)+1)
	for _, mapping := range tunnel.DNS {
		rule, err := ingressRule(topo, mapping)
		if err != nil {
			return nil, err
		}
		ingress = append(ingress, rule)
	}
	ingress = append(ingress, IngressRule{Service: NotFoundService})
	return &TunnelFile{
		Tunnel:          tunnel.TunnelName,
		CredentialsFile: tunnel.CredentialsFile,
		Ingress:         ingress,
	}, nil
}

func ingressRule(topo *models.Topology, mapping models.DNSMapping) (IngressRule, error) {
	service, err := topo.RequireService(mapping.ServiceID())
	if err != nil {
		return IngressRule{}, fmt.Errorf("dns %s: %w", mapping.Hostname, err)
	}
	node, err := topo.GetNode(service.Node)
	if err != nil {
		return IngressRule{}, fmt.Errorf("service %s: %w", service.ID, err)
	}
	host := node.PublicIP
	if host == "" {
		// 没有公网 IP 时用节点 ID 占位
		host = node.ID
	}
	return IngressRule{
		Hostname: mapping.Hostname,
		Service:  fmt.Sprintf("%s://%s:%d", ingressScheme(service, mapping.Entrypoint), host, entrypointPort(node, mapping.Entrypoint)),
	}, nil
}

func ingressScheme(service *models.Service, entrypoint string) string {
	if service.TLSEnabled() {
		return "https"
	}
	if strings.Contains(strings.ToLower(entrypoint), "secure") {
		return "https"
	}
	return "http"
}

func entrypointPort(node *models.Node, entrypoint string) int {
	if entrypoint == "" {
		return 443
	}
	if port, ok := node.Router.EntrypointPort(entrypoint); ok {
		return port
	}
	switch strings.ToLower(entrypoint) {
	case "web", "http":
		return 80
	default:
		return 443
	}
}
