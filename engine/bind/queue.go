package bind

import (
	"container/heap"
	"log/slog"
	"sync"
)

// queue is the scheduler's priority queue of ready Binds plus the FIFO of
// binding maps awaiting a reindex pass (spec §4.4, §5: "a binary min-heap
// ... under a single mutex held only during push/pop").
//
// Grounded on original_source/rust/boot/queue.rs.
type queue struct {
	mu      sync.Mutex
	heap    bindHeap
	pending []*bindingMap
}

func newQueue() *queue { return &queue{} }

func (q *queue) queueBind(b *bindRecord) {
	q.mu.Lock()
	heap.Push(&q.heap, b)
	q.mu.Unlock()
}

func (q *queue) queueReindex(m *bindingMap) {
	q.mu.Lock()
	q.pending = append(q.pending, m)
	q.mu.Unlock()
}

// processNext reindexes any pending binding maps, then pops and executes
// the single highest-priority Bind. It reports whether it did any work.
func (q *queue) processNext(log *slog.Logger) (bool, error) {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, m := range pending {
		m.reindex(q)
	}

	q.mu.Lock()
	if q.heap.Len() == 0 {
		q.mu.Unlock()
		return false, nil
	}
	b := heap.Pop(&q.heap).(*bindRecord)
	size := q.heap.Len()
	q.mu.Unlock()

	log.Debug("bind popped", "queue_remaining", size)
	if err := b.execute(log); err != nil {
		return false, err
	}
	return true, nil
}

// bindHeap implements container/heap.Interface over *bindRecord, ordered
// by bindRecord.less.
type bindHeap []*bindRecord

func (h bindHeap) Len() int            { return len(h) }
func (h bindHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h bindHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bindHeap) Push(x any)         { *h = append(*h, x.(*bindRecord)) }
func (h *bindHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
