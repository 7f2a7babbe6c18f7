package ast

// Arena is the append-only node store backing the whole tree for one
// compilation: tokens, types, and symbol info are arena-allocated, and
// this is the AST's slab. Node identities are assigned here and never
// reused.
type Arena struct {
	nodes  []Node
	nextID NodeID
}

// NewArena returns an empty Arena. NodeID 0 is never assigned (ids start at
// 1), so a zero NodeID can be used as a sentinel "no node" value.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) nextNodeID() NodeID {
	a.nextID++
	return a.nextID
}

// register records n in the arena's node list. Called by every NewXxx
// constructor after stamping the node's Base fields.
func (a *Arena) register(n Node) {
	a.nodes = append(a.nodes, n)
}

// Len reports how many nodes have been allocated from this arena.
func (a *Arena) Len() int { return len(a.nodes) }

// Node returns the arena-order node at index i (0-based), mainly useful for
// tests and debug dumps that want to walk every allocated node.
func (a *Arena) Node(i int) Node { return a.nodes[i] }
