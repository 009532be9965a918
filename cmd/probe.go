package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/wentf9/mesh-wizard/pkg/loader"
	"github.com/wentf9/mesh-wizard/pkg/probe"
)

type ProbeOptions struct {
	MeshPath     string
	Count        int
	TaskCount    uint
	Timeout      time.Duration
	Unprivileged bool
}

func NewCmdProbe() *cobra.Command {
	o := &ProbeOptions{}
	cmd := &cobra.Command{
		Use:   "probe <mesh>",
		Short: "检查 mesh 中各节点的连通性",
		Long: `对每个配置了 public_ip 或 lan_ip 的节点发送 ICMP ping,
并对 frp 服务端节点检查 bind_port 能否建立 TCP 连接。只做检查,不修改任何东西。
注意: 在 Linux 上发送 ICMP 默认需要 root 权限,可使用 --unprivileged 改用 UDP ping。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.MeshPath = args[0]
			return o.Run(cmd)
		},
	}
	cmd.Flags().IntVarP(&o.Count, "count", "c", probe.DefaultPingCount, "每个节点发送的 ping 包数量")
	cmd.Flags().UintVar(&o.TaskCount, "task", probe.DefaultConcurrency, "并行探测的节点数")
	cmd.Flags().DurationVar(&o.Timeout, "timeout", probe.DefaultTimeout, "单个节点的超时时间")
	cmd.Flags().BoolVar(&o.Unprivileged, "unprivileged", false, "使用非特权模式 (UDP) 发送 ping")
	return cmd
}

func (o *ProbeOptions) Run(cmd *cobra.Command) error {
	opts, err := loaderOptions()
	if err != nil {
		return err
	}
	topo, err := loader.LoadTopology(o.MeshPath, opts...)
	if err != nil {
		return err
	}

	p := probe.New()
	p.Pinger = probe.ICMPPinger{Count: o.Count, Timeout: o.Timeout, Privileged: !o.Unprivileged}
	p.Concurrency = o.TaskCount
	p.DialTimeout = o.Timeout

	reports := p.Run(cmd.Context(), topo)
	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "没有配置了地址的节点")
		return nil
	}
	printReports(cmd.OutOrStdout(), reports)
	return nil
}

func printReports(out io.Writer, reports []probe.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "节点\t地址\tPING\tFRP")
	for _, r := range reports {
		ping := fmt.Sprintf("%d/%d avg %v", r.Ping.Recv, r.Ping.Sent, r.Ping.AvgRTT.Round(time.Millisecond))
		if r.PingErr != nil {
			ping = "失败: " + r.PingErr.Error()
		}
		frp := "-"
		if r.FRP != nil {
			switch {
			case r.FRP.Open:
				frp = r.FRP.Address + " 开放"
			default:
				frp = r.FRP.Address + " 不可达"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.NodeID, r.Address, ping, frp)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(NewCmdProbe())
}
