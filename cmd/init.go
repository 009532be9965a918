package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/cmd/utils"
	"github.com/wentf9/mesh-wizard/global"
	"github.com/wentf9/mesh-wizard/pkg/generator"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"github.com/wentf9/mesh-wizard/pkg/utils/file"
)

const DefaultMeshFile = "mesh.yaml"

type InitOptions struct {
	Path  string
	Force bool
}

func NewCmdInit() *cobra.Command {
	o := &InitOptions{}
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "生成一份最小的 mesh 示例文件",
		Long: `在指定路径(默认 mesh.yaml)生成示例 mesh,包含一个公网 vps 节点、一条隧道 DNS 记录和一个服务。
frp token 为随机生成的 UUID。目标文件已存在时,交互终端下会询问是否覆盖,非交互环境需要 --force。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Complete(args)
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd)
		},
	}
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false, "覆盖已存在的文件")
	return cmd
}

func (o *InitOptions) Complete(args []string) {
	o.Path = DefaultMeshFile
	if len(args) > 0 {
		o.Path = args[0]
	}
}

func (o *InitOptions) Validate() error {
	exists, err := file.Exists(o.Path)
	if err != nil {
		return err
	}
	if !exists || o.Force {
		return nil
	}
	if !global.IsTerminal {
		return fmt.Errorf("%s exists, use --force to overwrite", o.Path)
	}
	if !utils.Confirm(fmt.Sprintf("%s exists, overwrite?", o.Path)) {
		return fmt.Errorf("aborted")
	}
	return nil
}

func (o *InitOptions) Run(cmd *cobra.Command) error {
	content, err := generator.MarshalYAML(Scaffold(uuid.NewString()))
	if err != nil {
		return err
	}
	if err := file.WriteRecursive(o.Path, content, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scaffolded %s\n", o.Path)
	return nil
}

// Scaffold 返回示例 mesh
func Scaffold(token string) *models.MeshFile {
	return &models.MeshFile{
		Mesh: models.MeshSpec{Name: "sample-mesh", Description: "Edit me"},
		Cloudflare: &models.CloudflareSpec{
			AccountID:  "CF_ACCOUNT_ID",
			TunnelName: "sample-tunnel",
			Zone:       "example.com",
			DNS: []models.DNSSpec{{
				Hostname:   "apps.example.com",
				Entrypoint: "websecure",
				Target:     models.ServiceURIPrefix + "apps-router",
			}},
		},
		Nodes: []models.NodeSpec{{
			ID:       "vps",
			Role:     "public_vps",
			PublicIP: "203.0.113.10",
			FRP: &models.FRPSpec{
				Server:         true,
				BindPort:       models.DefaultBindPort,
				VhostHTTPPort:  models.DefaultVhostHTTPPort,
				VhostHTTPSPort: models.DefaultVhostHTTPSPort,
				Token:          token,
			},
			Traefik: &models.TraefikSpec{
				Enabled: true,
				Entrypoints: []models.EntrypointSpec{
					{Name: "web", Port: 80},
					{Name: "websecure", Port: 443},
				},
			},
		}},
		Services: []models.ServiceSpec{{
			ID:   "apps-router",
			Type: string(models.ServiceHTTP),
			Node: "vps",
			Via:  models.DefaultVia,
			Router: &models.RouterSpec{
				Rule:        "Host(`apps.example.com`)",
				Entrypoints: []string{"websecure"},
				Service:     "apps-service",
				TLS:         true,
			},
			Backend: &models.BackendSpec{Type: string(models.BackendFRPHTTP), ProxyName: "apps-http"},
		}},
	}
}

func init() {
	rootCmd.AddCommand(NewCmdInit())
}
