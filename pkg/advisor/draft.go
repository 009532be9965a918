package advisor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

const (
	// PlaceholderToken 草稿中的 frp token,需要用户替换
	PlaceholderToken = "REPLACE_WITH_STRONG_TOKEN"
	fallbackHostname = "apps.example.com"
	draftPrompt      = "Summarize services and domains from the following topology description:\n"
)

var hostnamePattern = regexp.MustCompile(`[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractHostnames 按出现顺序提取去重后的主机名,没有时返回 apps.example.com
func ExtractHostnames(text string) []string {
	var hosts []string
	seen := make(map[string]bool)
	for _, match := range hostnamePattern.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		hosts = append(hosts, match)
	}
	if len(hosts) == 0 {
		return []string{fallbackHostname}
	}
	return hosts
}

// DraftFromText 根据自然语言描述生成一份两节点的 mesh 草稿(公网 vps + 内网集群)
func DraftFromText(ctx context.Context, p Provider, description string) (*models.MeshFile, error) {
	hint, err := complete(ctx, p, draftPrompt+description)
	if err != nil {
		return nil, fmt.Errorf("draft mesh: %w", err)
	}
	return buildDraft(ExtractHostnames(description + "\n" + hint)), nil
}

func label(host string) string {
	first, _, _ := strings.Cut(host, ".")
	return first
}

func buildDraft(hosts []string) *models.MeshFile {
	primary := hosts[0]
	meshName := strings.ReplaceAll(label(primary), "-", "_")
	_, zone, _ := strings.Cut(primary, ".")

	dns := make([]models.DNSSpec, 0, len(hosts))
	services := make([]models.ServiceSpec, 0, len(hosts))
	for _, host := range hosts {
		name := label(host)
		dns = append(dns, models.DNSSpec{
			Hostname:   host,
			Entrypoint: "websecure",
			Target:     models.ServiceURIPrefix + name + "-router",
		})
		services = append(services, models.ServiceSpec{
			ID:   name + "-router",
			Type: string(models.ServiceHTTP),
			Node: "vps",
			Via:  models.DefaultVia,
			Router: &models.RouterSpec{
				Rule:        fmt.Sprintf("Host(`%s`)", host),
				Entrypoints: []string{"websecure"},
				Service:     name + "-service",
				TLS:         true,
			},
			Backend: &models.BackendSpec{Type: string(models.BackendFRPHTTP), ProxyName: name + "-http"},
		})
	}

	return &models.MeshFile{
		Mesh: models.MeshSpec{Name: meshName + "-mesh", Description: "AI-drafted mesh"},
		Cloudflare: &models.CloudflareSpec{
			AccountID:  "CF_ACCOUNT",
			TunnelName: meshName + "-tunnel",
			Zone:       zone,
			DNS:        dns,
		},
		Nodes: []models.NodeSpec{
			{
				ID:       "vps",
				Role:     "public_vps",
				PublicIP: "198.51.100.10",
				FRP: &models.FRPSpec{
					Server:         true,
					BindPort:       models.DefaultBindPort,
					VhostHTTPPort:  models.DefaultVhostHTTPPort,
					VhostHTTPSPort: models.DefaultVhostHTTPSPort,
					Token:          PlaceholderToken,
				},
				Traefik: &models.TraefikSpec{
					Enabled: true,
					Entrypoints: []models.EntrypointSpec{
						{Name: "web", Port: 80},
						{Name: "websecure", Port: 443},
					},
				},
			},
			{
				ID:    "lan-cluster",
				Role:  "lan_cluster",
				LanIP: "192.168.1.10",
				FRP: &models.FRPSpec{
					Client:     true,
					ServerAddr: "vps",
					ServerPort: models.DefaultServerPort,
					Token:      PlaceholderToken,
					Proxies: []models.FRPProxySpec{{
						Name:          label(primary) + "-http",
						Type:          "http",
						LocalIP:       "10.42.0.10",
						LocalPort:     8080,
						CustomDomains: append([]string(nil), hosts...),
					}},
				},
			},
		},
		Services: services,
	}
}
