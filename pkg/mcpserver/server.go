package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/logger"
	"github.com/wentf9/mesh-wizard/pkg/models"
)

const ServerName = "mesh-wizard"

type PathInput struct {
	Path string `json:"path" jsonschema:"mesh yaml file or directory of fragments"`
}

type ValidateOutput struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}

type ArtifactOutput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type RenderOutput struct {
	Artifacts []ArtifactOutput `json:"artifacts"`
}

type DiagramOutput struct {
	Diagram string `json:"diagram"`
}

// Server 通过 MCP 暴露 validate/plan/render/diagram,全部只读,不写文件
type Server struct {
	opts []loader.Option
}

func New(opts ...loader.Option) *Server {
	return &Server{opts: opts}
}

// MCP 构造 sdk server 并注册全部工具
func (s *Server) MCP(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "validate_mesh", Description: "Validate a mesh topology against the schema"}, s.Validate)
	mcp.AddTool(server, &mcp.Tool{Name: "plan_mesh", Description: "Summarize the configs a render would produce"}, s.Plan)
	mcp.AddTool(server, &mcp.Tool{Name: "render_mesh", Description: "Render all configs and return them inline"}, s.Render)
	mcp.AddTool(server, &mcp.Tool{Name: "diagram_mesh", Description: "Draw a text diagram of the mesh"}, s.Diagram)
	return server
}

// Run 在 stdio 上提供服务直到 ctx 取消或客户端断开
func (s *Server) Run(ctx context.Context, version string) error {
	logger.With("mcp").Info("MCP server 启动", "transport", "stdio")
	return s.MCP(version).Run(ctx, &mcp.StdioTransport{})
}

// Validate 结构错误作为结果返回,其他错误(文件不存在等)作为工具错误
func (s *Server) Validate(_ context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, ValidateOutput, error) {
	_, err := loader.LoadRaw(in.Path, s.opts...)
	var sv *models.SchemaViolationError
	switch {
	case err == nil:
		return nil, ValidateOutput{Valid: true}, nil
	case errors.As(err, &sv):
		out := ValidateOutput{}
		for _, v := range sv.Violations {
			out.Violations = append(out.Violations, v.String())
		}
		return nil, out, nil
	default:
		return nil, ValidateOutput{}, err
	}
}

func (s *Server) Plan(_ context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, generator.Plan, error) {
	topo, err := loader.LoadTopology(in.Path, s.opts...)
	if err != nil {
		return nil, generator.Plan{}, err
	}
	return nil, generator.Summarize(topo), nil
}

func (s *Server) Render(ctx context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, RenderOutput, error) {
	topo, err := loader.LoadTopology(in.Path, s.opts...)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	bundle, err := generator.GenerateAll(ctx, topo)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	out := RenderOutput{Artifacts: make([]ArtifactOutput, 0, len(bundle.Artifacts))}
	for _, a := range bundle.Artifacts {
		out.Artifacts = append(out.Artifacts, ArtifactOutput{Path: a.Path, Content: string(a.Content)})
	}
	return nil, out, nil
}

func (s *Server) Diagram(_ context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, DiagramOutput, error) {
	topo, err := loader.LoadTopology(in.Path, s.opts...)
	if err != nil {
		return nil, DiagramOutput{}, err
	}
	return nil, DiagramOutput{Diagram: generator.Diagram(topo)}, nil
}
