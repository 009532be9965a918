package generator

import (
	"fmt"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

const (
	FRPServerSuffix   = "-frps.toml"
	frpsBindAddr      = "0.0.0.0"
	frpsMaxPoolCount  = 5
	frpsHeartbeat     = 90
	frpsDefaultLogLvl = "info"
)

// FRPServers 为每个 frp.server=true 的节点生成 frps.toml
func FRPServers(topo *models.Topology) (map[string]string, error) {
	configs := make(map[string]string)
	for _, node := range topo.Nodes() {
		if !node.IsProxyServer() {
			continue
		}
		if node.Proxy.Token == "" {
			return nil, &models.ConfigurationError{
				Subject: "node " + node.ID,
				Reason:  "FRP server requires an auth token",
			}
		}
		configs[node.ID+FRPServerSuffix] = renderServer(node.Proxy)
	}
	return configs, nil
}

func renderServer(frp *models.ProxyConfig) string {
	lines := []string{
		fmt.Sprintf("bindAddr = %q", frpsBindAddr),
		fmt.Sprintf("bindPort = %d", frp.BindPort),
		fmt.Sprintf("vhostHTTPPort = %d", frp.VhostHTTPPort),
		fmt.Sprintf("vhostHTTPSPort = %d", frp.VhostHTTPSPort),
		`auth.method = "token"`,
		fmt.Sprintf("auth.token = %q", frp.Token),
		fmt.Sprintf("transport.maxPoolCount = %d", frpsMaxPoolCount),
		fmt.Sprintf("transport.heartbeatTimeout = %d", frpsHeartbeat),
		`log.to = "console"`,
		fmt.Sprintf("log.level = %q", frpsDefaultLogLvl),
	}
	return strings.Join(lines, "\n") + "\n"
}
