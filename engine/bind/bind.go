// Package bind implements spec §4.4's binding registry and scheduler: a
// priority queue of evaluator registrations ("Binds") that fire in
// precedence order over the slice of enrolled nodes their span covers.
//
// Grounded on original_source/rust/boot/binding.rs and queue.rs.
package bind

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/symbol"
	"github.com/bitlang/bit/internal/invariant"
)

// Precedence orders evaluators; smaller runs earlier (spec §4.4).
type Precedence int

// Evaluator is attached to a binding table and fires over the nodes its
// Bind's span covers once the scheduler pops it.
type Evaluator interface {
	Precedence() Precedence
	Execute(nodes []*node.Node) error
}

// Registry is the per-compile binding index and scheduler. It implements
// node.Enroller, so Graph nodes enroll into it directly on creation and on
// done/value transitions.
type Registry struct {
	mu       sync.Mutex
	byKind   map[node.Kind]*bindTable
	bySymbol map[symKey]*bindTable
	queue    *queue
	log      *slog.Logger
}

type symKey struct {
	sym    symbol.Symbol
	isWord bool
}

// NewRegistry creates an empty binding registry logging scheduler
// decisions through slog.Default().
func NewRegistry() *Registry {
	return NewRegistryWithLogger(slog.Default())
}

// NewRegistryWithLogger is NewRegistry with an explicit logger, letting
// cmd/bit route --verbose scheduler tracing through its own handler.
func NewRegistryWithLogger(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		byKind:   map[node.Kind]*bindTable{},
		bySymbol: map[symKey]*bindTable{},
		queue:    newQueue(),
		log:      log,
	}
}

func (r *Registry) tableForKind(k node.Kind) *bindTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byKind[k]
	if !ok {
		t = newBindTable(r.queue)
		r.byKind[k] = t
	}
	return t
}

func (r *Registry) tableForSymbol(sym symbol.Symbol, isWord bool) *bindTable {
	key := symKey{sym: sym, isWord: isWord}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.bySymbol[key]
	if !ok {
		t = newBindTable(r.queue)
		r.bySymbol[key] = t
	}
	return t
}

// RegisterGlobal attaches eval to every source's node-of-kind-k table,
// including sources observed in the future, with a span equal to the full
// source (spec §4.4's register_global).
func (r *Registry) RegisterGlobal(k node.Kind, eval Evaluator) {
	r.tableForKind(k).addGlobal(eval)
}

// RegisterWord attaches eval to every source's table for Word tokens whose
// text is exactly word (spec §4.4's register_symbol, word variant — e.g.
// ParsePrint's trigger on Word("print")).
func (r *Registry) RegisterWord(word string, eval Evaluator) {
	r.tableForSymbol(symbol.Get(word), true).addGlobal(eval)
}

// RegisterSymbol attaches eval to every source's table for Symbol tokens
// whose text is exactly sym.
func (r *Registry) RegisterSymbol(sym string, eval Evaluator) {
	r.tableForSymbol(symbol.Get(sym), false).addGlobal(eval)
}

// RegisterSpan binds eval to exactly the given span (spec §4.4's
// register_span).
func (r *Registry) RegisterSpan(span source.Span, k node.Kind, eval Evaluator) {
	r.tableForKind(k).setSpan(span, eval)
}

// EnrollKind implements node.Enroller.
func (r *Registry) EnrollKind(n *node.Node, k node.Kind) {
	r.tableForKind(k).addNode(n)
}

// EnrollSymbol implements node.Enroller.
func (r *Registry) EnrollSymbol(n *node.Node, sym symbol.Symbol, isWord bool) {
	r.tableForSymbol(sym, isWord).addNode(n)
}

// Run drains the scheduler queue, executing Binds in priority order until
// no work remains (spec §4.4's scheduler loop).
func (r *Registry) Run() error {
	for {
		more, err := r.queue.processNext(r.log)
		if err != nil {
			return err
		}
		if !more {
			r.log.Debug("scheduler queue drained")
			return nil
		}
	}
}

// bindTable is the per-kind (or per-symbol) set of per-source binding
// maps, plus the globally-registered evaluators that seed every newly
// observed source (spec's BindTable).
type bindTable struct {
	mu       sync.Mutex
	bySource map[source.Source]*bindingMap
	globals  []Evaluator
	queue    *queue
}

func newBindTable(q *queue) *bindTable {
	return &bindTable{bySource: map[source.Source]*bindingMap{}, queue: q}
}

func (t *bindTable) addGlobal(eval Evaluator) {
	t.mu.Lock()
	t.globals = append(t.globals, eval)
	t.mu.Unlock()
}

func (t *bindTable) mapFor(src source.Source) *bindingMap {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.bySource[src]
	if !ok {
		m = newBindingMap()
		for _, eval := range t.globals {
			m.addBind(&bindRecord{eval: eval, span: src.Span(), parent: m, seq: nextSeq()})
		}
		t.bySource[src] = m
	}
	return m
}

func (t *bindTable) addNode(n *node.Node) {
	m := t.mapFor(n.Span().Source())
	m.addNode(n)
	m.queueReindex(t.queue)
}

func (t *bindTable) setSpan(span source.Span, eval Evaluator) {
	m := t.mapFor(span.Source())
	m.addBind(&bindRecord{eval: eval, span: span, parent: m, seq: nextSeq()})
	m.queueReindex(t.queue)
}

var seqCounter int64

func nextSeq() int64 {
	seqCounter++
	return seqCounter
}

// bindRecord is a registered evaluator waiting to fire over a span (spec's
// Bind).
type bindRecord struct {
	eval   Evaluator
	span   source.Span
	parent *bindingMap
	seq    int64
}

// less implements spec §4.4's total order: (precedence, source, span.len
// asc, span.start, span.end), with registration order (seq) as the final
// FIFO tiebreak.
func (b *bindRecord) less(o *bindRecord) bool {
	if b.eval.Precedence() != o.eval.Precedence() {
		return b.eval.Precedence() < o.eval.Precedence()
	}
	if c := b.span.Source().Compare(o.span.Source()); c != 0 {
		return c < 0
	}
	if b.span.Len() != o.span.Len() {
		return b.span.Len() < o.span.Len()
	}
	if b.span.Start() != o.span.Start() {
		return b.span.Start() < o.span.Start()
	}
	if b.span.End() != o.span.End() {
		return b.span.End() < o.span.End()
	}
	return b.seq < o.seq
}

func (b *bindRecord) overlaps(sta, end int) bool {
	return b.span.Start() < end && sta < b.span.End()
}

// bindingMap is the per-(source,key) index of enrolled nodes and pending
// Binds (spec's BindingMap).
type bindingMap struct {
	mu             sync.Mutex
	nodes          []*node.Node
	newNodes       []*node.Node
	pending        []*bindRecord
	complete       []*bindRecord
	pendingReindex bool
	changedSta     int
	changedEnd     int
}

func newBindingMap() *bindingMap {
	return &bindingMap{changedSta: int(^uint(0) >> 1), changedEnd: 0}
}

func (m *bindingMap) addNode(n *node.Node) {
	m.mu.Lock()
	m.newNodes = append(m.newNodes, n)
	span := n.Span()
	if span.Start() < m.changedSta {
		m.changedSta = span.Start()
	}
	if span.End() > m.changedEnd {
		m.changedEnd = span.End()
	}
	m.mu.Unlock()
}

func (m *bindingMap) addBind(b *bindRecord) {
	m.mu.Lock()
	m.pending = append(m.pending, b)
	m.mu.Unlock()
}

func (m *bindingMap) addDone(b *bindRecord) {
	m.mu.Lock()
	m.complete = append(m.complete, b)
	m.mu.Unlock()
}

// queueReindex schedules a reindex pass for m with the registry queue,
// unless one is already pending.
func (m *bindingMap) queueReindex(q *queue) {
	m.mu.Lock()
	if m.pendingReindex {
		m.mu.Unlock()
		return
	}
	m.pendingReindex = true
	m.mu.Unlock()
	q.queueReindex(m)
}

// reindex merges newly registered binds into the queue and re-fires any
// completed bind whose span overlaps the range changed since its last run
// (spec §4.4).
func (m *bindingMap) reindex(q *queue) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	changedSta, changedEnd := m.changedSta, m.changedEnd
	m.changedSta = int(^uint(0) >> 1)
	m.changedEnd = 0
	m.pendingReindex = false
	m.mu.Unlock()

	for _, b := range pending {
		q.queueBind(b)
	}

	if changedEnd < changedSta {
		return
	}

	m.mu.Lock()
	complete := m.complete
	m.complete = nil
	m.mu.Unlock()

	kept := complete[:0]
	for _, b := range complete {
		if b.overlaps(changedSta, changedEnd) {
			q.queueBind(b)
		} else {
			kept = append(kept, b)
		}
	}
	m.mu.Lock()
	m.complete = append(m.complete, kept...)
	m.mu.Unlock()
}

// execute runs b's evaluator over the nodes enrolled within its span,
// dropping any that are now done (spec §4.4's scheduler loop body).
func (b *bindRecord) execute(log *slog.Logger) error {
	m := b.parent
	m.mu.Lock()
	newNodes := m.newNodes
	m.newNodes = nil
	if len(newNodes) > 0 {
		m.nodes = append(m.nodes, newNodes...)
		sort.SliceStable(m.nodes, func(i, j int) bool {
			return m.nodes[i].Span().Start() < m.nodes[j].Span().Start()
		})
	}
	nodes := m.nodes
	m.mu.Unlock()

	sta, end := b.span.Start(), b.span.End()
	staIdx := sort.Search(len(nodes), func(i int) bool { return nodes[i].Span().Start() >= sta })
	endIdx := staIdx + sort.Search(len(nodes)-staIdx, func(i int) bool { return nodes[staIdx+i].Span().Start() >= end })
	invariant.Invariant(staIdx <= endIdx && endIdx <= len(nodes), "bind span search must yield a valid range")

	m.addDone(b)

	log.Debug("bind firing", "precedence", b.eval.Precedence(), "source", b.span.Source().Name(),
		"span_start", sta, "span_end", end, "nodes", endIdx-staIdx)

	if err := b.eval.Execute(nodes[staIdx:endIdx]); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cur := staIdx
	for i := staIdx; i < endIdx; i++ {
		n := m.nodes[i]
		if !n.Done() {
			m.nodes[cur] = n
			cur++
		}
	}
	tail := len(m.nodes) - endIdx
	copy(m.nodes[cur:cur+tail], m.nodes[endIdx:])
	m.nodes = m.nodes[:cur+tail]
	return nil
}
