package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	plan := Summarize(mustTopology(t, fullMesh))
	assert.Equal(t, Plan{
		Mesh:         "demo",
		Nodes:        []string{"vps", "lan"},
		Services:     []ServiceSummary{{ID: "apps", Type: "http", Via: "traefik", Node: "vps"}},
		Cloudflare:   true,
		FRPServers:   1,
		FRPClients:   1,
		TraefikNodes: 1,
	}, plan)

	plan = Summarize(mustTopology(t, "mesh: {name: x}\nnodes: []\nservices: []\n"))
	assert.False(t, plan.Cloudflare)
	assert.Empty(t, plan.Services)
	assert.Zero(t, plan.FRPServers)
}
