package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"gopkg.in/yaml.v3"
)

func mustTopology(t *testing.T, doc string) *models.Topology {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	topo, err := models.Build(raw)
	require.NoError(t, err)
	return topo
}

// 单节点示例拓扑
const exampleMesh = `
mesh:
  name: example
nodes:
  - id: vps
    role: public_vps
    public_ip: 203.0.113.10
    frp:
      server: true
      token: CHANGE_ME
    traefik:
      enabled: true
services:
  - id: apps
    type: http
    node: vps
    router:
      rule: "Host(` + "`apps.example.com`" + `)"
    backend:
      type: frp_http
`
