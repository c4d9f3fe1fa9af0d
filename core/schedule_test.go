package core

import (
	"sort"
	"testing"

	"github.com/peterldowns/testy/check"
)

func sortedIDs(ids []uint64) []uint64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestExecutionSchedulePopDue(t *testing.T) {
	s := NewExecutionSchedule()
	s.Schedule(1, 15)
	s.Schedule(2, 15)
	s.Schedule(3, 20)

	check.Equal(t, 2, s.Len())
	check.Equal(t, []uint64{1, 2}, sortedIDs(s.Due(15)))

	check.Equal(t, []uint64{1, 2}, sortedIDs(s.PopDue(15)))
	// Bucket is gone once drained.
	check.Equal(t, 0, len(s.PopDue(15)))
	check.Equal(t, 1, s.Len())

	check.Equal(t, []uint64{3}, s.PopDue(20))
	check.Equal(t, 0, s.Len())
}

func TestExecutionSchedulePopDueEmptyTick(t *testing.T) {
	s := NewExecutionSchedule()
	s.Schedule(1, 15)

	check.Equal(t, 0, len(s.PopDue(14)))
	check.Equal(t, 1, s.Len())
}

func TestExecutionScheduleUnschedule(t *testing.T) {
	s := NewExecutionSchedule()
	s.Schedule(1, 15)
	s.Schedule(2, 15)

	s.Unschedule(1, 15)
	check.Equal(t, []uint64{2}, s.Due(15))
	check.Equal(t, 1, s.Len())

	// Dropping the last entry removes the bucket entirely.
	s.Unschedule(2, 15)
	check.Equal(t, 0, s.Len())

	// Unscheduling an absent id or tick is a no-op.
	s.Unschedule(9, 15)
	s.Unschedule(1, 99)
	check.Equal(t, 0, s.Len())
}
