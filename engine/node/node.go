package node

import (
	"sync"

	"github.com/bitlang/bit/engine/arena"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/internal/invariant"
)

// Graph owns the arena pool backing every Node it creates and the binding
// registry new/changed nodes enroll into.
type Graph struct {
	pool *arena.Pool[Node]
	enr  Enroller
}

// NewGraph creates a Graph whose nodes are allocated from a, enrolling into
// enr on creation and on any done/value transition that requires re-bind.
func NewGraph(a *arena.Arena, enr Enroller) *Graph {
	return &Graph{pool: arena.NewPool[Node](a), enr: enr}
}

// NewNode allocates a parentless node with no children, enrolling it into
// the binding registry.
func (g *Graph) NewNode(span source.Span, v Value) *Node {
	n := g.pool.Store(Node{span: span, value: v, graph: g, index: -1})
	n.enroll()
	return n
}

// Node is a mutable, arena-allocated cell; identity is pointer equality
// (spec §3).
type Node struct {
	mu       sync.Mutex
	graph    *Graph
	span     source.Span
	value    Value
	done     bool
	parent   *Node
	index    int
	children []*Node
}

func (n *Node) enroll() {
	n.value.Bind(n, n.graph.enr)
}

// Graph returns the graph this node was allocated from, letting evaluators
// create further nodes in the same arena and binding registry.
func (n *Node) Graph() *Graph { return n.graph }

// Span returns the node's source span.
func (n *Node) Span() source.Span {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.span
}

// Value returns the node's current payload.
func (n *Node) Value() Value {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// Done reports whether the node is marked done (spec §3: "no further
// binding should act on me").
func (n *Node) Done() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.done
}

// SetDone sets the done flag. A false→true transition is a pure flag set;
// a true→false transition re-enrolls the node into the binding registry
// (spec §4.4's node mutation primitives).
func (n *Node) SetDone(done bool) {
	n.mu.Lock()
	wasDone := n.done
	n.done = done
	n.mu.Unlock()
	if wasDone && !done {
		n.enroll()
	}
}

// KeepAlive clears the done flag, re-enrolling the node.
func (n *Node) KeepAlive() { n.SetDone(false) }

// SetValue replaces the payload, unconditionally clears done, and
// re-enrolls the node (spec §4.4).
func (n *Node) SetValue(v Value) {
	n.mu.Lock()
	n.value = v
	n.done = false
	n.mu.Unlock()
	n.enroll()
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

// Index returns the node's position within its parent's children, or -1 if
// parentless.
func (n *Node) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// Children returns the node's current children slice. The slice is
// replaced wholesale on every edit (spec §3) and must be treated as
// read-only by callers.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.children
}

// Len returns the number of children.
func (n *Node) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}

func (n *Node) setParentIndex(p *Node, index int) {
	n.mu.Lock()
	n.parent = p
	n.index = index
	n.mu.Unlock()
}

// Replace wholesale-replaces n's children with the given slice, adopting
// each (setting its parent to n and its index to its position).
func (n *Node) Replace(children []*Node) {
	n.mu.Lock()
	out := arena.Slice(n.graph.pool.Arena(), children)
	n.children = out
	n.mu.Unlock()
	for i, c := range out {
		c.setParentIndex(n, i)
	}
	invariant.Invariant(len(n.Children()) == len(children), "Replace must adopt every child")
}

// InsertNodes splices children into n's child list starting at index at,
// adopting them and reindexing everything from at onward.
func (n *Node) InsertNodes(at int, children ...*Node) {
	n.mu.Lock()
	cur := n.children
	invariant.InRange(at, 0, len(cur), "InsertNodes at")
	out := make([]*Node, 0, len(cur)+len(children))
	out = append(out, cur[:at]...)
	out = append(out, children...)
	out = append(out, cur[at:]...)
	out = arena.Slice(n.graph.pool.Arena(), out)
	n.children = out
	n.mu.Unlock()
	for i := at; i < len(out); i++ {
		out[i].setParentIndex(n, i)
	}
	invariant.Invariant(n.Len() == len(out), "InsertNodes must adopt every child")
}

// AppendNodes appends children to the end of n's child list.
func (n *Node) AppendNodes(children ...*Node) {
	n.InsertNodes(n.Len(), children...)
}

// RemoveNodes removes the count children starting at index at and returns
// them in their original order. Removed nodes keep their stale parent/index
// fields (spec §3's Lifecycles: they become unreachable from their former
// parent, not individually mutated).
func (n *Node) RemoveNodes(at, count int) []*Node {
	n.mu.Lock()
	cur := n.children
	invariant.Precondition(at >= 0 && count >= 0 && at+count <= len(cur),
		"RemoveNodes(%d, %d) out of bounds for %d children", at, count, len(cur))
	removed := append([]*Node(nil), cur[at:at+count]...)
	out := make([]*Node, 0, len(cur)-count)
	out = append(out, cur[:at]...)
	out = append(out, cur[at+count:]...)
	out = arena.Slice(n.graph.pool.Arena(), out)
	n.children = out
	n.mu.Unlock()
	for i := at; i < len(out); i++ {
		out[i].setParentIndex(n, i)
	}
	return removed
}
