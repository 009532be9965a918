package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/wentf9/mesh-wizard/pkg/models"
)

// PublicRole 面向公网的节点角色
const PublicRole = "public_vps"

// HAPlan 是高可用建议,Report 为 markdown
type HAPlan struct {
	Suggestions []string
	Report      string
}

// SuggestHA 请求模型给出冗余入口、备用隧道和健康检查方面的建议
func SuggestHA(ctx context.Context, p Provider, topo *models.Topology) (*HAPlan, error) {
	response, err := complete(ctx, p, haPrompt(topo))
	if err != nil {
		return nil, fmt.Errorf("ha suggestions: %w", err)
	}

	var suggestions []string
	for line := range strings.Lines(response) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		suggestions = append(suggestions, strings.Trim(strings.TrimRight(line, "\r\n"), "- "))
	}

	var report strings.Builder
	report.WriteString("## HA / Failover suggestions\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&report, "- %s\n", s)
	}
	return &HAPlan{Suggestions: suggestions, Report: report.String()}, nil
}

func haPrompt(topo *models.Topology) string {
	var public, lan []string
	for _, node := range topo.Nodes() {
		if node.Role == PublicRole {
			public = append(public, node.ID)
		} else {
			lan = append(lan, node.ID)
		}
	}
	return "Suggest high availability improvements for the following mesh:\n" +
		fmt.Sprintf("Public nodes: %s\n", idList(public)) +
		fmt.Sprintf("LAN nodes: %s\n", idList(lan)) +
		fmt.Sprintf("Services: %s\n", idList(topo.ServiceIDs())) +
		"Recommend redundant ingress, backup tunnels, and health checks."
}

func idList(ids []string) string {
	return "[" + strings.Join(ids, ", ") + "]"
}
