package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/models"
)

const testMesh = `
mesh:
  name: demo
cloudflare:
  tunnel_name: demo-tunnel
  zone: example.com
  dns:
    - hostname: apps.example.com
      entrypoint: websecure
      target: service://apps
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
    backend:
      type: frp_http
      proxy_name: apps-http
`

// sandbox 隔离 HOME 和工作目录,避免读到真实的配置文件
func sandbox(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeMesh(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := sandbox(t)
	out, err := run(t, "validate", writeMesh(t, dir, testMesh))
	require.NoError(t, err)
	assert.Contains(t, out, "Mesh file is valid")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("mesh: {name: x}\nnodes: [{role: r}]\nservices: []\n"), 0644))
	_, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSchemaViolation)
}

func TestPlanCommand(t *testing.T) {
	dir := sandbox(t)
	out, err := run(t, "plan", writeMesh(t, dir, testMesh))
	require.NoError(t, err)
	assert.Contains(t, out, "Mesh: demo\n")
	assert.Contains(t, out, "Nodes: vps\n")
	assert.Contains(t, out, " • apps (http) via traefik @ vps\n")
	assert.Contains(t, out, " - Cloudflare config: yes\n")
	assert.Contains(t, out, " - FRP servers: 1\n")
	assert.Contains(t, out, " - FRP clients: 0\n")
	assert.Contains(t, out, " - Traefik nodes: 1\n")
}

func TestRenderCommand(t *testing.T) {
	dir := sandbox(t)
	outDir := filepath.Join(dir, "generated")
	out, err := run(t, "render", writeMesh(t, dir, testMesh), "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Configs written to "+outDir)

	for _, rel := range []string{
		"cloudflare/config.yaml",
		"frp/vps-frps.toml",
		"traefik/vps-traefik-static.yaml",
		"traefik/vps-traefik-dynamic.yaml",
	} {
		assert.FileExists(t, filepath.Join(outDir, filepath.FromSlash(rel)))
	}
	data, err := os.ReadFile(filepath.Join(outDir, "frp", "vps-frps.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `auth.token = "CHANGE_ME"`)
}

func TestRenderCommand_WritesNothingOnError(t *testing.T) {
	dir := sandbox(t)
	outDir := filepath.Join(dir, "generated")
	mesh := strings.Replace(testMesh, "target: service://apps", "target: service://ghost", 1)
	_, err := run(t, "render", writeMesh(t, dir, mesh), "--out", outDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownReference)
	assert.NoDirExists(t, outDir)
}

func TestDiagramCommand(t *testing.T) {
	dir := sandbox(t)
	out, err := run(t, "diagram", writeMesh(t, dir, testMesh))
	require.NoError(t, err)
	assert.Contains(t, out, "[ Cloudflare Tunnel: demo-tunnel ]")
	assert.Contains(t, out, "   |--> apps [http] via traefik -> proxy apps-http")
}

func TestColorizeKeepsText(t *testing.T) {
	art := "[Internet]\n   |\n[ Node vps (public_vps) ]\n   |--> apps [http] via traefik -> unspecified"
	colored := colorize(art)
	assert.True(t, strings.HasPrefix(colored, "[Internet]\n   |\n"))
	assert.Contains(t, colored, "apps [http] via traefik -> unspecified")
	assert.Contains(t, colored, "   |--> ")
}

func TestInspectCommand(t *testing.T) {
	dir := sandbox(t)
	out, err := run(t, "inspect", writeMesh(t, dir, testMesh), "$.nodes[*].id")
	require.NoError(t, err)
	assert.Equal(t, "\"vps\"\n", out)
}

func TestInitCommand(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "sample.yaml")

	out, err := run(t, "init", path, "--force=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Scaffolded "+path)

	topo, err := loader.LoadTopology(path)
	require.NoError(t, err)
	vps, err := topo.GetNode("vps")
	require.NoError(t, err)
	assert.Len(t, vps.Proxy.Token, 36)
	_, err = topo.RequireService("apps-router")
	assert.NoError(t, err)

	// 非交互环境下已存在的文件需要 --force
	_, err = run(t, "init", path, "--force=false")
	assert.ErrorContains(t, err, "--force")

	_, err = run(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestAICommandsWithMockProvider(t *testing.T) {
	dir := sandbox(t)
	desc := filepath.Join(dir, "desc.txt")
	require.NoError(t, os.WriteFile(desc, []byte("Expose grafana.home.example.org from my k3s cluster"), 0644))
	draftPath := filepath.Join(dir, "draft.yaml")

	_, err := run(t, "ai-suggest", desc, draftPath, "--mock", "grafana dashboard")
	require.NoError(t, err)
	topo, err := loader.LoadTopology(draftPath)
	require.NoError(t, err)
	assert.Equal(t, "grafana-mesh", topo.Mesh.Name)

	report := filepath.Join(dir, "ha.md")
	_, err = run(t, "ai-ha", draftPath, report, "--mock", "- add a second vps")
	require.NoError(t, err)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "## HA / Failover suggestions\n\n- add a second vps\n", string(data))
}

func TestSecretEncryptRoundTrip(t *testing.T) {
	dir := sandbox(t)
	keyPath := filepath.Join(dir, "keys", "mesh.key")

	out, err := run(t, "secret", "encrypt", "s3cret", "--key-file", keyPath)
	require.NoError(t, err)
	enc := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(enc, "ENC:"))
	assert.FileExists(t, keyPath)

	mesh := strings.Replace(testMesh, "token: CHANGE_ME", "token: \""+enc+"\"", 1)
	outDir := filepath.Join(dir, "generated")
	_, err = run(t, "render", writeMesh(t, dir, mesh), "--out", outDir, "--key-file", keyPath)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(outDir, "frp", "vps-frps.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `auth.token = "s3cret"`)
}

func TestSecretKeygenSave(t *testing.T) {
	dir := sandbox(t)
	keyPath := filepath.Join(dir, "k.key")

	_, err := run(t, "secret", "keygen", "--key-file", keyPath, "--save", "--force=false")
	require.NoError(t, err)
	assert.FileExists(t, keyPath)
	data, err := os.ReadFile(filepath.Join(dir, ".mesh-wizard.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(data), keyPath)

	_, err = run(t, "secret", "keygen", "--key-file", keyPath, "--save=false", "--force=false")
	assert.ErrorContains(t, err, "--force")
}

func TestVersionCommand(t *testing.T) {
	sandbox(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mesh-wizard dev")
}
