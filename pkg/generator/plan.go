package generator

import "github.com/wentf9/mesh-wizard/pkg/models"

// ServiceSummary 是 plan 输出中的一行服务
type ServiceSummary struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Via  string `json:"via"`
	Node string `json:"node"`
}

// Plan 描述 render 将会生成哪些配置
type Plan struct {
	Mesh         string           `json:"mesh"`
	Nodes        []string         `json:"nodes"`
	Services     []ServiceSummary `json:"services"`
	Cloudflare   bool             `json:"cloudflare"`
	FRPServers   int              `json:"frp_servers"`
	FRPClients   int              `json:"frp_clients"`
	TraefikNodes int              `json:"traefik_nodes"`
}

// Summarize 统计拓扑中各类产物的数量,不调用任何生成器
func Summarize(topo *models.Topology) Plan {
	plan := Plan{
		Mesh:       topo.Mesh.Name,
		Nodes:      topo.NodeIDs(),
		Services:   []ServiceSummary{},
		Cloudflare: topo.Tunnel != nil,
	}
	for _, svc := range topo.Services() {
		plan.Services = append(plan.Services, ServiceSummary{ID: svc.ID, Type: string(svc.Type), Via: svc.Via, Node: svc.Node})
	}
	for _, node := range topo.Nodes() {
		if node.IsProxyServer() {
			plan.FRPServers++
		}
		if node.IsProxyClient() {
			plan.FRPClients++
		}
		if node.RouterEnabled() {
			plan.TraefikNodes++
		}
	}
	return plan
}
