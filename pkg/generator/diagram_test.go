package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagram_Layout(t *testing.T) {
	topo := mustTopology(t, `
mesh: {name: demo}
cloudflare: {tunnel_name: demo-tunnel, zone: example.com}
nodes:
  - {id: vps, role: public_vps}
  - {id: lan, role: lan_cluster}
services:
  - id: apps
    type: http
    node: vps
    backend: {type: frp_http, proxy_name: apps-http}
  - id: db
    type: tcp
    node: lan
    via: frp
    target: {node: lan, port: 5432}
  - id: raw
    type: tcp
    node: lan
    target: {node: lan}
  - {id: todo, type: http, node: lan}
`)
	want := `[Internet]
   |
[ Cloudflare DNS (example.com) ]
   |
[ Cloudflare Tunnel: demo-tunnel ]
   |
[ Node vps (public_vps) ]
   |--> apps [http] via traefik -> proxy apps-http
   |
[ Node lan (lan_cluster) ]
   |--> db [tcp] via frp -> node lan:5432
   |--> raw [tcp] via traefik -> node lan:
   |--> todo [http] via traefik -> unspecified`
	assert.Equal(t, want, Diagram(topo))
}

func TestDiagram_DefaultZoneAndNoTunnel(t *testing.T) {
	topo := mustTopology(t, `
mesh: {name: demo}
cloudflare: {tunnel_name: t}
nodes: []
services: []
`)
	assert.Equal(t, "[Internet]\n   |\n[ Cloudflare DNS (Cloudflare) ]\n   |\n[ Cloudflare Tunnel: t ]", Diagram(topo))

	topo = mustTopology(t, "mesh: {name: demo}\nnodes: [{id: a, role: r}]\nservices: []\n")
	assert.Equal(t, "[Internet]\n   |\n[ Node a (r) ]", Diagram(topo))
}
