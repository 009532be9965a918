package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/models"
)

func TestFRPServers_ExampleMesh(t *testing.T) {
	configs, err := FRPServers(mustTopology(t, exampleMesh))
	require.NoError(t, err)
	require.Contains(t, configs, "vps-frps.toml")

	want := `bindAddr = "0.0.0.0"
bindPort = 7000
vhostHTTPPort = 19080
vhostHTTPSPort = 19443
auth.method = "token"
auth.token = "CHANGE_ME"
transport.maxPoolCount = 5
transport.heartbeatTimeout = 90
log.to = "console"
log.level = "info"
`
	assert.Equal(t, want, configs["vps-frps.toml"])
}

func TestFRPServers_RequiresToken(t *testing.T) {
	_, err := FRPServers(mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: vps
    role: public_vps
    frp: {server: true}
services: []
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "vps")
}

func TestFRPServers_SkipsNonServers(t *testing.T) {
	configs, err := FRPServers(mustTopology(t, `
mesh: {name: demo}
nodes:
  - {id: a, role: r}
  - id: b
    role: r
    frp: {client: true, token: t, server_addr: a}
services: []
`))
	require.NoError(t, err)
	assert.Empty(t, configs)
}

const clientMesh = `
mesh: {name: demo}
nodes:
  - id: vps
    role: public_vps
    public_ip: 203.0.113.10
  - id: lan
    role: lan_cluster
    frp:
      client: true
      server_addr: vps
      token: s3cret
      proxies:
        - name: web
          type: http
          local_ip: 10.0.0.5
          local_port: 8080
          custom_domains: [a.example.com, b.example.com]
        - name: ssh
          type: tcp
          local_ip: 10.0.0.5
          local_port: 22
          remote_port: 6000
          subdomain: shell
services: []
`

func TestFRPClients_RendersStanzas(t *testing.T) {
	configs, err := FRPClients(mustTopology(t, clientMesh))
	require.NoError(t, err)

	want := `serverAddr = "203.0.113.10"
serverPort = 7000
auth.method = "token"
auth.token = "s3cret"

[[proxies]]
name = "web"
type = "http"
localIP = "10.0.0.5"
localPort = 8080
customDomains = ["a.example.com", "b.example.com"]
[[proxies]]
name = "ssh"
type = "tcp"
localIP = "10.0.0.5"
localPort = 22
remotePort = 6000
subdomain = "shell"
`
	assert.Equal(t, want, configs["lan-frpc.toml"])
}

func TestFRPClients_LiteralServerAddrAndPlaceholder(t *testing.T) {
	configs, err := FRPClients(mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: lan
    role: lan_cluster
    frp: {client: true, server_addr: frp.example.net, server_port: 7443, token: t}
services: []
`))
	require.NoError(t, err)
	want := `serverAddr = "frp.example.net"
serverPort = 7443
auth.method = "token"
auth.token = "t"

# Define proxies in mesh YAML
`
	assert.Equal(t, want, configs["lan-frpc.toml"])
}

func TestFRPClients_KnownNodeWithoutPublicIPStaysLiteral(t *testing.T) {
	configs, err := FRPClients(mustTopology(t, `
mesh: {name: demo}
nodes:
  - {id: hub, role: lan_cluster}
  - id: lan
    role: lan_cluster
    frp: {client: true, server_addr: hub, token: t}
services: []
`))
	require.NoError(t, err)
	assert.Contains(t, configs["lan-frpc.toml"], `serverAddr = "hub"`)
}

func TestFRPClients_RequiredFields(t *testing.T) {
	// token 先于 server_addr 检查
	_, err := FRPClients(mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: lan
    role: lan_cluster
    frp: {client: true}
services: []
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "token")

	_, err = FRPClients(mustTopology(t, `
mesh: {name: demo}
nodes:
  - id: lan
    role: lan_cluster
    frp: {client: true, token: t}
services: []
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "server_addr")
}
