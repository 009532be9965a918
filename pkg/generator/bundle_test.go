package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/models"
)

const fullMesh = `
mesh: {name: demo}
cloudflare:
  tunnel_name: demo-tunnel
  dns:
    - {hostname: apps.example.com, entrypoint: websecure, target: service://apps}
nodes:
  - id: vps
    role: public_vps
    public_ip: 203.0.113.10
    frp: {server: true, token: CHANGE_ME}
    traefik: {enabled: true}
  - id: lan
    role: lan_cluster
    frp: {client: true, server_addr: vps, token: CHANGE_ME}
services:
  - id: apps
    type: http
    node: vps
    backend: {type: frp_http, proxy_name: apps-http}
`

func TestGenerateAll_PathsAreSorted(t *testing.T) {
	bundle, err := GenerateAll(context.Background(), mustTopology(t, fullMesh))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cloudflare/config.yaml",
		"frp/lan-frpc.toml",
		"frp/vps-frps.toml",
		"traefik/vps-traefik-dynamic.yaml",
		"traefik/vps-traefik-static.yaml",
	}, bundle.Paths())

	frps, ok := bundle.Get("frp/vps-frps.toml")
	require.True(t, ok)
	assert.Contains(t, string(frps.Content), `auth.token = "CHANGE_ME"`)
}

func TestGenerateAll_NoTunnelSkipsCloudflare(t *testing.T) {
	bundle, err := GenerateAll(context.Background(), mustTopology(t, exampleMesh))
	require.NoError(t, err)
	_, ok := bundle.Get(CloudflareArtifact)
	assert.False(t, ok)
	assert.Len(t, bundle.Artifacts, 3)
}

func TestGenerateAll_FirstErrorStopsRender(t *testing.T) {
	bundle, err := GenerateAll(context.Background(), mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: vps
    role: public_vps
    frp: {server: true}
    traefik: {enabled: true}
services: []
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	assert.Nil(t, bundle)
}

func TestGenerateAll_DanglingDNSTarget(t *testing.T) {
	_, err := GenerateAll(context.Background(), mustTopology(t, `
mesh: {name: demo}
cloudflare:
  tunnel_name: t
  dns:
    - {hostname: a.example.com, entrypoint: web, target: ghost}
nodes: []
services: []
`))
	assert.ErrorIs(t, err, models.ErrUnknownReference)
}

func TestGenerateAll_DanglingServiceNode(t *testing.T) {
	// 没有 DNS 记录指向该服务,依然要报告未知节点
	bundle, err := GenerateAll(context.Background(), mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: vps
    role: public_vps
    traefik: {enabled: true}
services:
  - {id: apps, type: http, node: ghost}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownReference)
	assert.Contains(t, err.Error(), "service apps: unknown node 'ghost'")
	assert.Nil(t, bundle)

	var ref *models.UnknownReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "node", ref.Kind)
	assert.Equal(t, "ghost", ref.ID)
}

func TestGenerateAll_AllReferencesResolve(t *testing.T) {
	_, err := GenerateAll(context.Background(), mustTopology(t, fullMesh))
	assert.NotErrorIs(t, err, models.ErrUnknownReference)
	assert.NoError(t, err)
}

func TestBundle_Write(t *testing.T) {
	bundle, err := GenerateAll(context.Background(), mustTopology(t, fullMesh))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	var written []string
	require.NoError(t, bundle.Write(dir, func(a Artifact) { written = append(written, a.Path) }))
	assert.Equal(t, bundle.Paths(), written)

	data, err := os.ReadFile(filepath.Join(dir, "frp", "lan-frpc.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `serverAddr = "203.0.113.10"`)

	data, err = os.ReadFile(filepath.Join(dir, "cloudflare", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tunnel: demo-tunnel")
}
