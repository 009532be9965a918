package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"gopkg.in/yaml.v3"
)

func TestExtractHostnames(t *testing.T) {
	hosts := ExtractHostnames("expose grafana.home.example.org and api.example.com, also grafana.home.example.org again")
	assert.Equal(t, []string{"grafana.home.example.org", "api.example.com"}, hosts)

	assert.Equal(t, []string{"apps.example.com"}, ExtractHostnames("no hosts here, just example.com"))
}

func TestDraftFromText_UsesDescriptionAndHint(t *testing.T) {
	p := NewMockProvider("Services: media-box.example.net")
	draft, err := DraftFromText(context.Background(), p, "I run my-app.example.net at home")
	require.NoError(t, err)

	prompts := p.Prompts()
	require.Len(t, prompts, 1)
	assert.Equal(t, "Summarize services and domains from the following topology description:\nI run my-app.example.net at home", prompts[0])

	assert.Equal(t, "my_app-mesh", draft.Mesh.Name)
	require.NotNil(t, draft.Cloudflare)
	assert.Equal(t, "my_app-tunnel", draft.Cloudflare.TunnelName)
	assert.Equal(t, "example.net", draft.Cloudflare.Zone)
	require.Len(t, draft.Cloudflare.DNS, 2)
	assert.Equal(t, "service://media-box-router", draft.Cloudflare.DNS[1].Target)

	require.Len(t, draft.Nodes, 2)
	lan := draft.Nodes[1]
	assert.Equal(t, "lan-cluster", lan.ID)
	assert.Equal(t, PlaceholderToken, lan.FRP.Token)
	assert.Equal(t, "my-app-http", lan.FRP.Proxies[0].Name)
	assert.Equal(t, []string{"my-app.example.net", "media-box.example.net"}, lan.FRP.Proxies[0].CustomDomains)

	require.Len(t, draft.Services, 2)
	assert.Equal(t, "Host(`media-box.example.net`)", draft.Services[1].Router.Rule)
	assert.Equal(t, "media-box-http", draft.Services[1].Backend.ProxyName)
}

func TestDraftFromText_BuildsUsableTopology(t *testing.T) {
	draft, err := DraftFromText(context.Background(), NewMockProvider(""), "nothing specific")
	require.NoError(t, err)

	data, err := yaml.Marshal(draft)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	topo, err := models.Build(raw)
	require.NoError(t, err)

	svc, err := topo.RequireService("apps-router")
	require.NoError(t, err)
	assert.True(t, svc.TLSEnabled())
	assert.Equal(t, "example.com", topo.Tunnel.Zone)
}

func TestDraftFromText_ProviderFailure(t *testing.T) {
	p := &MockProvider{Err: errors.New("quota exceeded")}
	_, err := DraftFromText(context.Background(), p, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	_, err = DraftFromText(context.Background(), nil, "x")
	assert.ErrorIs(t, err, ErrNoProvider)
}

func haTopology(t *testing.T) *models.Topology {
	t.Helper()
	topo, err := models.Build(map[string]any{
		"mesh": map[string]any{"name": "demo"},
		"nodes": []any{
			map[string]any{"id": "vps", "role": "public_vps"},
			map[string]any{"id": "lan", "role": "lan_cluster"},
			map[string]any{"id": "edge", "role": "public_vps"},
		},
		"services": []any{
			map[string]any{"id": "apps", "type": "http", "node": "vps"},
			map[string]any{"id": "db", "type": "tcp", "node": "lan"},
		},
	})
	require.NoError(t, err)
	return topo
}

func TestSuggestHA(t *testing.T) {
	p := NewMockProvider("- Add a second VPS\n\n  - Use a backup tunnel  \r\nHealth checks on apps\n")
	plan, err := SuggestHA(context.Background(), p, haTopology(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Add a second VPS", "Use a backup tunnel", "Health checks on apps"}, plan.Suggestions)
	assert.Equal(t, "## HA / Failover suggestions\n\n- Add a second VPS\n- Use a backup tunnel\n- Health checks on apps\n", plan.Report)

	prompt := p.Prompts()[0]
	assert.Contains(t, prompt, "Public nodes: [vps, edge]\n")
	assert.Contains(t, prompt, "LAN nodes: [lan]\n")
	assert.Contains(t, prompt, "Services: [apps, db]\n")
	assert.Contains(t, prompt, "Recommend redundant ingress, backup tunnels, and health checks.")
}

func TestSuggestHA_ProviderFailure(t *testing.T) {
	_, err := SuggestHA(context.Background(), &MockProvider{Err: errors.New("boom")}, haTopology(t))
	assert.ErrorContains(t, err, "boom")
}
