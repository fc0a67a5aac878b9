// Package frontier implements the depth-bucketed BFS admission queue: a
// mapping from depth to a FIFO queue of Locations discovered at that
// depth but not yet fetched. It knows nothing about fetching, extraction,
// or storage — a data structure module, not a pipeline executor.
package frontier

import (
	"sort"

	"github.com/lexforge/wdict/internal/location"
	"github.com/lexforge/wdict/pkg/container"
)

// Frontier tracks, per depth, the Locations still awaiting a fetch. A
// Location is tracked at the lowest depth it was ever admitted at; a
// later Enqueue call at an equal or greater depth is a no-op.
type Frontier struct {
	queues map[int]*container.FIFOQueue[location.Location]
	seenAt map[string]int
}

func NewFrontier() *Frontier {
	return &Frontier{
		queues: make(map[int]*container.FIFOQueue[location.Location]),
		seenAt: make(map[string]int),
	}
}

// Enqueue admits loc at depth, unless it is already tracked at a depth
// less than or equal to depth. Returns true if loc was newly enqueued.
func (f *Frontier) Enqueue(loc location.Location, depth int) bool {
	key := loc.String()
	if existing, ok := f.seenAt[key]; ok && existing <= depth {
		return false
	}
	f.seenAt[key] = depth
	q, ok := f.queues[depth]
	if !ok {
		q = container.NewFIFOQueue[location.Location]()
		f.queues[depth] = q
	}
	q.Enqueue(loc)
	return true
}

// Drain removes and returns every Location queued at depth, in FIFO
// discovery order, leaving that depth's queue empty. Enforcing strict
// depth-level ordering (not draining d+1 before d is fully drained) is
// the caller's responsibility.
func (f *Frontier) Drain(depth int) []location.Location {
	q, ok := f.queues[depth]
	if !ok {
		return nil
	}
	out := make([]location.Location, 0, q.Size())
	for {
		loc, ok := q.Dequeue()
		if !ok {
			break
		}
		out = append(out, loc)
	}
	delete(f.queues, depth)
	return out
}

// PendingDepths returns the depths with at least one queued Location, in
// ascending order.
func (f *Frontier) PendingDepths() []int {
	out := make([]int, 0, len(f.queues))
	for d, q := range f.queues {
		if q.Size() > 0 {
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// IsEmpty reports whether every depth queue is empty.
func (f *Frontier) IsEmpty() bool {
	for _, q := range f.queues {
		if q.Size() > 0 {
			return false
		}
	}
	return true
}

// All returns a copy of every still-pending Location, grouped by depth.
// Unlike Drain, it does not remove anything: it is the read-only view a
// snapshot operation needs.
func (f *Frontier) All() map[int][]location.Location {
	out := make(map[int][]location.Location, len(f.queues))
	for depth, q := range f.queues {
		if q.Size() == 0 {
			continue
		}
		out[depth] = append([]location.Location(nil), (*q)...)
	}
	return out
}

// MarkSeen records loc as already seen at depth 0, the lowest possible
// depth, so that any future Enqueue attempt for it — at any depth — is
// rejected. Used when rebuilding a Frontier from a resumed StateSnapshot,
// where the Visited set carries Locations this fresh Frontier has no other
// record of ever having discovered.
func (f *Frontier) MarkSeen(loc location.Location) {
	key := loc.String()
	if existing, ok := f.seenAt[key]; ok && existing <= 0 {
		return
	}
	f.seenAt[key] = 0
}
