package core

// MaxParticipantAuctions bounds how many open auctions one account may be
// involved in at once, counting both its listings and its bids.
const MaxParticipantAuctions = 5

// ParticipantRecord is one account's bounded view of the auctions it is
// currently involved in, as seller or bidder.
type ParticipantRecord struct {
	Account  AccountID
	auctions []uint64
}

// Auctions returns a copy of the auction ids the account is involved in.
func (p *ParticipantRecord) Auctions() []uint64 {
	out := make([]uint64, len(p.auctions))
	copy(out, p.auctions)
	return out
}

func (p *ParticipantRecord) Len() int {
	return len(p.auctions)
}

func (p *ParticipantRecord) contains(id uint64) bool {
	for _, have := range p.auctions {
		if have == id {
			return true
		}
	}
	return false
}

// add records involvement in an auction. Adding an id already present is a
// no-op; exceeding the cap fails without mutating.
func (p *ParticipantRecord) add(id uint64) error {
	if p.contains(id) {
		return nil
	}
	if len(p.auctions) >= MaxParticipantAuctions {
		return ErrTooManyActiveAuctions
	}
	p.auctions = append(p.auctions, id)
	return nil
}

func (p *ParticipantRecord) remove(id uint64) {
	for i, have := range p.auctions {
		if have == id {
			p.auctions = append(p.auctions[:i], p.auctions[i+1:]...)
			return
		}
	}
}

// ParticipantIndex maps accounts to their bounded auction lists. Records are
// created lazily on first involvement and dropped once empty.
type ParticipantIndex struct {
	records map[AccountID]*ParticipantRecord
}

func NewParticipantIndex() *ParticipantIndex {
	return &ParticipantIndex{records: make(map[AccountID]*ParticipantRecord)}
}

// Record returns the account's record, if it is involved in any auction.
func (ix *ParticipantIndex) Record(acct AccountID) (*ParticipantRecord, bool) {
	rec, ok := ix.records[acct]
	return rec, ok
}

func (ix *ParticipantIndex) add(acct AccountID, id uint64) error {
	rec, ok := ix.records[acct]
	if !ok {
		rec = &ParticipantRecord{Account: acct}
	}
	if err := rec.add(id); err != nil {
		return err
	}
	ix.records[acct] = rec
	return nil
}

func (ix *ParticipantIndex) remove(acct AccountID, id uint64) {
	rec, ok := ix.records[acct]
	if !ok {
		return
	}
	rec.remove(id)
	if rec.Len() == 0 {
		delete(ix.records, acct)
	}
}
