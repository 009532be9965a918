package generator

import (
	"fmt"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

// 图表中的连接线
const (
	DiagramEdge    = "   |"
	DiagramService = "   |--> "
)

// Diagram 输出拓扑的文本图,节点和服务按声明顺序排列
func Diagram(topo *models.Topology) string {
	lines := []string{"[Internet]"}
	if t := topo.Tunnel; t != nil {
		zone := t.Zone
		if zone == "" {
			zone = "Cloudflare"
		}
		lines = append(lines,
			DiagramEdge,
			fmt.Sprintf("[ Cloudflare DNS (%s) ]", zone),
			DiagramEdge,
			fmt.Sprintf("[ Cloudflare Tunnel: %s ]", t.TunnelName),
		)
	}
	for _, node := range topo.Nodes() {
		lines = append(lines, DiagramEdge, fmt.Sprintf("[ Node %s (%s) ]", node.ID, node.Role))
		for _, svc := range topo.ServicesOn(node.ID) {
			lines = append(lines, DiagramService+describeService(svc))
		}
	}
	return strings.Join(lines, "\n")
}

func describeService(svc *models.Service) string {
	target := "unspecified"
	switch {
	case svc.Backend != nil && svc.Backend.ProxyName != "":
		target = "proxy " + svc.Backend.ProxyName
	case svc.Target != nil && svc.Target.Node != "":
		port := ""
		if svc.Target.Port != 0 {
			port = fmt.Sprint(svc.Target.Port)
		}
		target = fmt.Sprintf("node %s:%s", svc.Target.Node, port)
	}
	return fmt.Sprintf("%s [%s] via %s -> %s", svc.ID, svc.Type, svc.Via, target)
}
