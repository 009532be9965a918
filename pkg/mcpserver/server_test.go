package mcpserver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mesh = `
mesh:
  name: demo
nodes:
  - id: vps
    role: public_vps
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
`

func writeMesh(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate(t *testing.T) {
	s := New()
	_, out, err := s.Validate(context.Background(), nil, PathInput{Path: writeMesh(t, mesh)})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	_, out, err = s.Validate(context.Background(), nil, PathInput{Path: writeMesh(t, "mesh: {name: x}\n")})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, []string{
		"(root): 'nodes' is a required property",
		"(root): 'services' is a required property",
	}, out.Violations)

	_, _, err = s.Validate(context.Background(), nil, PathInput{Path: filepath.Join(t.TempDir(), "none")})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPlan(t *testing.T) {
	_, plan, err := New().Plan(context.Background(), nil, PathInput{Path: writeMesh(t, mesh)})
	require.NoError(t, err)
	assert.Equal(t, "demo", plan.Mesh)
	assert.Equal(t, 1, plan.FRPServers)
	assert.Equal(t, 1, plan.TraefikNodes)
}

func TestRender_ReturnsArtifactsInline(t *testing.T) {
	path := writeMesh(t, mesh)
	_, out, err := New().Render(context.Background(), nil, PathInput{Path: path})
	require.NoError(t, err)

	var paths []string
	for _, a := range out.Artifacts {
		paths = append(paths, a.Path)
	}
	assert.Equal(t, []string{"frp/vps-frps.toml", "traefik/vps-traefik-dynamic.yaml", "traefik/vps-traefik-static.yaml"}, paths)
	assert.Contains(t, out.Artifacts[0].Content, `auth.token = "CHANGE_ME"`)

	// 不写任何文件
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiagram(t *testing.T) {
	_, out, err := New().Diagram(context.Background(), nil, PathInput{Path: writeMesh(t, mesh)})
	require.NoError(t, err)
	assert.Contains(t, out.Diagram, "[ Node vps (public_vps) ]")
	assert.Contains(t, out.Diagram, "apps [http] via traefik -> unspecified")
}

func TestMCP_RegistersServer(t *testing.T) {
	assert.NotNil(t, New().MCP("test"))
}
