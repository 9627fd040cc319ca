package stat

// EntranceNode is the root statistics node of one named calling context
// (spec.md §3, "EntranceNode"). One is registered per context name and
// the registry's size bounds the number of named contexts. It does not
// aggregate the resources entered under that context: the Statistic
// slot records only into the entry's DefaultNode, ClusterNode, origin
// node and the global inbound node, so its counters stay at zero.
type EntranceNode struct {
	StatisticNode

	name string
}

func NewEntranceNode(name string) *EntranceNode {
	return &EntranceNode{StatisticNode: *NewStatisticNode(), name: name}
}

func (n *EntranceNode) Name() string { return n.name }
