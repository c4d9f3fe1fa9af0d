package core

import "github.com/google/btree"

// tickBucket is the set of auctions due for finalization at one tick.
type tickBucket struct {
	tick Tick
	ids  map[uint64]struct{}
}

// ExecutionSchedule is an ordered map of logical time to the auctions whose
// deadline falls on that tick. The per-tick sweep pops a single bucket
// instead of scanning the whole auctions table. An auction id lives in at
// most one bucket at any moment.
type ExecutionSchedule struct {
	tree *btree.BTreeG[*tickBucket]
}

func NewExecutionSchedule() *ExecutionSchedule {
	return &ExecutionSchedule{
		tree: btree.NewG(2, func(a, b *tickBucket) bool { return a.tick < b.tick }),
	}
}

// Schedule registers an auction for finalization at the given tick.
func (s *ExecutionSchedule) Schedule(id uint64, at Tick) {
	b, ok := s.tree.Get(&tickBucket{tick: at})
	if !ok {
		b = &tickBucket{tick: at, ids: make(map[uint64]struct{})}
		s.tree.ReplaceOrInsert(b)
	}
	b.ids[id] = struct{}{}
}

// Unschedule removes an auction from its bucket, dropping the bucket once
// empty. Used when an auction is cancelled ahead of its deadline.
func (s *ExecutionSchedule) Unschedule(id uint64, at Tick) {
	b, ok := s.tree.Get(&tickBucket{tick: at})
	if !ok {
		return
	}
	delete(b.ids, id)
	if len(b.ids) == 0 {
		s.tree.Delete(b)
	}
}

// Due returns the auctions scheduled for the given tick without draining
// the bucket.
func (s *ExecutionSchedule) Due(at Tick) []uint64 {
	b, ok := s.tree.Get(&tickBucket{tick: at})
	if !ok {
		return nil
	}
	ids := make([]uint64, 0, len(b.ids))
	for id := range b.ids {
		ids = append(ids, id)
	}
	return ids
}

// PopDue removes and returns the bucket for the given tick. Order within a
// bucket is not significant; each auction is finalized independently.
func (s *ExecutionSchedule) PopDue(now Tick) []uint64 {
	b, ok := s.tree.Delete(&tickBucket{tick: now})
	if !ok {
		return nil
	}
	ids := make([]uint64, 0, len(b.ids))
	for id := range b.ids {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of non-empty tick buckets.
func (s *ExecutionSchedule) Len() int {
	return s.tree.Len()
}
