package generator

import (
	"fmt"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

const (
	FRPClientSuffix = "-frpc.toml"
	// 没有定义任何代理时输出的占位注释
	emptyProxiesComment = "# Define proxies in mesh YAML"
)

// FRPClients 为每个 frp.client=true 的节点生成 frpc.toml
func FRPClients(topo *models.Topology) (map[string]string, error) {
	configs := make(map[string]string)
	for _, node := range topo.Nodes() {
		if !node.IsProxyClient() {
			continue
		}
		content, err := renderClient(topo, node)
		if err != nil {
			return nil, err
		}
		configs[node.ID+FRPClientSuffix] = content
	}
	return configs, nil
}

func renderClient(topo *models.Topology, node *models.Node) (string, error) {
	frp := node.Proxy
	if frp.Token == "" {
		return "", &models.ConfigurationError{Subject: "node " + node.ID, Reason: "FRP client requires an auth token"}
	}
	if frp.ServerAddr == "" {
		return "", &models.ConfigurationError{Subject: "node " + node.ID, Reason: "FRP client must define server_addr"}
	}
	lines := []string{
		fmt.Sprintf("serverAddr = %q", resolveServerAddr(topo, frp.ServerAddr)),
		fmt.Sprintf("serverPort = %d", frp.ServerPort),
		`auth.method = "token"`,
		fmt.Sprintf("auth.token = %q", frp.Token),
		"",
	}
	if len(frp.Proxies) == 0 {
		lines = append(lines, emptyProxiesComment)
	}
	// 各个 [[proxies]] 段直接相连,中间不留空行
	for _, proxy := range frp.Proxies {
		lines = append(lines, renderProxy(proxy)...)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// resolveServerAddr server_addr 指向已知且有公网 IP 的节点时替换为该 IP,否则原样使用
func resolveServerAddr(topo *models.Topology, addr string) string {
	if node, ok := topo.LookupNode(addr); ok && node.PublicIP != "" {
		return node.PublicIP
	}
	return addr
}

func renderProxy(proxy models.ProxyEndpoint) []string {
	lines := []string{
		"[[proxies]]",
		fmt.Sprintf("name = %q", proxy.Name),
		fmt.Sprintf("type = %q", proxy.Type),
		fmt.Sprintf("localIP = %q", proxy.LocalIP),
		fmt.Sprintf("localPort = %d", proxy.LocalPort),
	}
	if proxy.RemotePort != nil && *proxy.RemotePort != 0 {
		lines = append(lines, fmt.Sprintf("remotePort = %d", *proxy.RemotePort))
	}
	if len(proxy.CustomDomains) > 0 {
		domains := make([]string, len(proxy.CustomDomains))
		for i, d := range proxy.CustomDomains {
			domains[i] = fmt.Sprintf("%q", d)
		}
		lines = append(lines, fmt.Sprintf("customDomains = [%s]", strings.Join(domains, ", ")))
	}
	if proxy.Subdomain != "" {
		lines = append(lines, fmt.Sprintf("subdomain = %q", proxy.Subdomain))
	}
	return lines
}
