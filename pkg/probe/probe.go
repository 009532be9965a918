package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	ping "github.com/prometheus-community/pro-bing"
	"github.com/wentf9/mesh-wizard/pkg/logger"
	"github.com/wentf9/mesh-wizard/pkg/models"
	"github.com/wentf9/mesh-wizard/pkg/runner"
)

const (
	DefaultPingCount   = 3
	DefaultTimeout     = 4 * time.Second
	DefaultConcurrency = 5
)

// Stats 是一次 ping 的统计
type Stats struct {
	Sent   int
	Recv   int
	Loss   float64
	AvgRTT time.Duration
}

// Pinger 可替换,测试中不发送真实的 ICMP 包
type Pinger interface {
	Ping(ctx context.Context, addr string) (Stats, error)
}

// Dialer 与 net.Dialer.DialContext 签名一致
type Dialer func(ctx context.Context, network, address string) (net.Conn, error)

// ICMPPinger 使用 pro-bing 发送 ICMP 请求。
// Linux 上 Privileged 为 true 时需要 root 或 CAP_NET_RAW
type ICMPPinger struct {
	Count      int
	Timeout    time.Duration
	Privileged bool
}

func (p ICMPPinger) Ping(ctx context.Context, addr string) (Stats, error) {
	pinger, err := ping.NewPinger(addr)
	if err != nil {
		return Stats{}, fmt.Errorf("创建pinger失败: %w", err)
	}
	pinger.SetPrivileged(p.Privileged)
	pinger.Count = p.Count
	if pinger.Count <= 0 {
		pinger.Count = DefaultPingCount
	}
	pinger.Interval = 500 * time.Millisecond
	pinger.Timeout = p.Timeout
	if pinger.Timeout <= 0 {
		pinger.Timeout = DefaultTimeout
	}
	if err := pinger.RunWithContext(ctx); err != nil {
		return Stats{}, err
	}
	s := pinger.Statistics()
	return Stats{Sent: s.PacketsSent, Recv: s.PacketsRecv, Loss: s.PacketLoss, AvgRTT: s.AvgRtt}, nil
}

// PortCheck 是一次 TCP 连接检查的结果
type PortCheck struct {
	Address string
	Open    bool
	Err     error
}

// Report 是单个节点的探测结果
type Report struct {
	NodeID  string
	Address string
	Ping    Stats
	PingErr error
	// 仅 frp 服务端节点有值
	FRP *PortCheck
}

// Reachable 至少收到一个 ping 回包
func (r Report) Reachable() bool {
	return r.PingErr == nil && r.Ping.Recv > 0
}

// Prober 对拓扑中的节点做只读的连通性检查
type Prober struct {
	Pinger      Pinger
	Dial        Dialer
	Concurrency uint
	DialTimeout time.Duration
}

// New 返回使用真实 ICMP 和 TCP 的 Prober
func New() *Prober {
	var d net.Dialer
	return &Prober{
		Pinger:      ICMPPinger{Count: DefaultPingCount, Timeout: DefaultTimeout, Privileged: true},
		Dial:        d.DialContext,
		Concurrency: DefaultConcurrency,
		DialTimeout: DefaultTimeout,
	}
}

// Address 优先使用公网 IP,其次内网 IP
func Address(node *models.Node) string {
	if node.PublicIP != "" {
		return node.PublicIP
	}
	return node.LanIP
}

// Targets 返回有地址可探测的节点
func Targets(topo *models.Topology) []*models.Node {
	var out []*models.Node
	for _, node := range topo.Nodes() {
		if Address(node) != "" {
			out = append(out, node)
		}
	}
	return out
}

// Run 并发探测所有有地址的节点,结果按节点声明顺序排列
func (p *Prober) Run(ctx context.Context, topo *models.Topology) []Report {
	log := logger.With("probe")
	results := runner.RunParallel(ctx, Targets(topo), p.Concurrency, func(ctx context.Context, node *models.Node) (Report, error) {
		return p.probeNode(ctx, node), nil
	})

	reports := make([]Report, len(results))
	for i, r := range results {
		reports[i] = r.Value
		if r.Err != nil {
			reports[i] = Report{NodeID: r.Node.ID, Address: Address(r.Node), PingErr: r.Err}
		}
		log.Debug("探测完成", "node", reports[i].NodeID, "reachable", reports[i].Reachable())
	}
	return reports
}

func (p *Prober) probeNode(ctx context.Context, node *models.Node) Report {
	addr := Address(node)
	report := Report{NodeID: node.ID, Address: addr}
	report.Ping, report.PingErr = p.Pinger.Ping(ctx, addr)

	if node.IsProxyServer() {
		target := net.JoinHostPort(addr, strconv.Itoa(node.Proxy.BindPort))
		report.FRP = p.checkPort(ctx, target)
	}
	return report
}

func (p *Prober) checkPort(ctx context.Context, address string) *PortCheck {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := p.Dial(ctx, "tcp", address)
	if err != nil {
		return &PortCheck{Address: address, Err: err}
	}
	conn.Close()
	return &PortCheck{Address: address, Open: true}
}
