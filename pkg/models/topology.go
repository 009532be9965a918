package models

// Topology 是构建完成后的只读拓扑。
// 节点和服务按文档中的声明顺序遍历,保证图表和生成结果可复现。
type Topology struct {
	Mesh   MeshMetadata
	Tunnel *TunnelConfig

	nodes        map[string]*Node
	nodeOrder    []string
	services     map[string]*Service
	serviceOrder []string
}

func newTopology(mesh MeshMetadata, tunnel *TunnelConfig) *Topology {
	return &Topology{
		Mesh:     mesh,
		Tunnel:   tunnel,
		nodes:    make(map[string]*Node),
		services: make(map[string]*Service),
	}
}

// 重复的 ID 覆盖之前的值,但保留首次出现的位置
func (t *Topology) addNode(n *Node) {
	if _, ok := t.nodes[n.ID]; !ok {
		t.nodeOrder = append(t.nodeOrder, n.ID)
	}
	t.nodes[n.ID] = n
}

func (t *Topology) addService(s *Service) {
	if _, ok := t.services[s.ID]; !ok {
		t.serviceOrder = append(t.serviceOrder, s.ID)
	}
	t.services[s.ID] = s
}

// Nodes 按声明顺序返回全部节点
func (t *Topology) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		nodes = append(nodes, t.nodes[id])
	}
	return nodes
}

// Services 按声明顺序返回全部服务
func (t *Topology) Services() []*Service {
	services := make([]*Service, 0, len(t.serviceOrder))
	for _, id := range t.serviceOrder {
		services = append(services, t.services[id])
	}
	return services
}

func (t *Topology) NodeIDs() []string {
	return append([]string(nil), t.nodeOrder...)
}

func (t *Topology) ServiceIDs() []string {
	return append([]string(nil), t.serviceOrder...)
}

// ServicesOn 返回挂在指定节点上的服务
func (t *Topology) ServicesOn(nodeID string) []*Service {
	var out []*Service
	for _, id := range t.serviceOrder {
		if s := t.services[id]; s.Node == nodeID {
			out = append(out, s)
		}
	}
	return out
}

// LookupNode 不报错的查找,用于 server_addr 这类允许填写外部地址的字段
func (t *Topology) LookupNode(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// GetNode 查找节点,不存在时返回 UnknownReferenceError
func (t *Topology) GetNode(id string) (*Node, error) {
	if n, ok := t.nodes[id]; ok {
		return n, nil
	}
	return nil, &UnknownReferenceError{Kind: "node", ID: id}
}

// RequireService 查找服务,不存在时返回 UnknownReferenceError
func (t *Topology) RequireService(id string) (*Service, error) {
	if s, ok := t.services[id]; ok {
		return s, nil
	}
	return nil, &UnknownReferenceError{Kind: "service", ID: id}
}
