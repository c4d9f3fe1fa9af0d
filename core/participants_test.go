package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestParticipantRecordCap(t *testing.T) {
	rec := &ParticipantRecord{Account: "alice"}

	for id := uint64(1); id <= MaxParticipantAuctions; id++ {
		check.Nil(t, rec.add(id))
	}
	check.Equal(t, MaxParticipantAuctions, rec.Len())

	err := rec.add(uint64(MaxParticipantAuctions + 1))
	check.True(t, errors.Is(err, ErrTooManyActiveAuctions))
	check.Equal(t, MaxParticipantAuctions, rec.Len())

	// Re-adding a held id passes even at the cap.
	check.Nil(t, rec.add(3))
	check.Equal(t, MaxParticipantAuctions, rec.Len())
}

func TestParticipantRecordRemove(t *testing.T) {
	rec := &ParticipantRecord{Account: "alice"}
	check.Nil(t, rec.add(1))
	check.Nil(t, rec.add(2))
	check.Nil(t, rec.add(3))

	rec.remove(2)
	check.Equal(t, []uint64{1, 3}, rec.Auctions())

	// Removing an absent id is a no-op.
	rec.remove(9)
	check.Equal(t, []uint64{1, 3}, rec.Auctions())
}

func TestParticipantIndexLazyRecords(t *testing.T) {
	ix := NewParticipantIndex()

	_, ok := ix.Record("alice")
	check.False(t, ok)

	check.Nil(t, ix.add("alice", 1))
	rec, ok := ix.Record("alice")
	check.True(t, ok)
	check.Equal(t, []uint64{1}, rec.Auctions())

	// A failed add on a fresh account leaves no record behind.
	full := AccountID("bob")
	for id := uint64(1); id <= MaxParticipantAuctions; id++ {
		check.Nil(t, ix.add(full, id))
	}
	check.True(t, errors.Is(ix.add(full, 99), ErrTooManyActiveAuctions))

	// Dropping the last id drops the record.
	ix.remove("alice", 1)
	_, ok = ix.Record("alice")
	check.False(t, ok)
}
