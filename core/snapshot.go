package core

import (
	"fmt"
	"sort"
)

// Snapshot is a plain-data export of the full engine state, suitable for a
// storage codec. The execution schedule is deliberately absent: it is
// derivable, and RestoreManager rebuilds it from the non-terminal records.
type Snapshot struct {
	NextID       uint64                `cbor:"next_id"`
	Now          Tick                  `cbor:"now"`
	Auctions     []AuctionSnapshot     `cbor:"auctions"`
	Participants []ParticipantSnapshot `cbor:"participants"`
}

// AuctionSnapshot is the stored form of one auction record. Bids are listed
// highest first, matching ledger order.
type AuctionSnapshot struct {
	ID          uint64    `cbor:"id"`
	Seller      AccountID `cbor:"seller"`
	Quantity    Amount    `cbor:"quantity"`
	StartingBid Amount    `cbor:"starting_bid"`
	Memo        string    `cbor:"memo,omitempty"`
	Category    Tier      `cbor:"category"`
	Period      Tick      `cbor:"period"`
	StartAt     Tick      `cbor:"start_at"`
	EndAt       Tick      `cbor:"end_at"`
	Status      int       `cbor:"status"`
	Bids        []Bid     `cbor:"bids,omitempty"`
	WinningBid  *Bid      `cbor:"winning_bid,omitempty"`
}

// ParticipantSnapshot is the stored form of one participant record.
type ParticipantSnapshot struct {
	Account  AccountID `cbor:"account"`
	Auctions []uint64  `cbor:"auctions"`
}

// Snapshot exports the engine state. Entries are sorted so two snapshots of
// the same state are byte-identical after encoding.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		NextID:   m.nextID,
		Now:      m.now,
		Auctions: make([]AuctionSnapshot, 0, len(m.auctions)),
	}
	for _, rec := range m.auctions {
		as := AuctionSnapshot{
			ID:          rec.ID,
			Seller:      rec.Seller,
			Quantity:    rec.Quantity,
			StartingBid: rec.StartingBid,
			Memo:        rec.Memo,
			Category:    rec.Category,
			Period:      rec.Period,
			StartAt:     rec.StartAt,
			EndAt:       rec.EndAt,
			Status:      int(rec.status),
			Bids:        rec.Bids(),
		}
		if win, ok := rec.WinningBid(); ok {
			as.WinningBid = &win
		}
		s.Auctions = append(s.Auctions, as)
	}
	sort.Slice(s.Auctions, func(i, j int) bool { return s.Auctions[i].ID < s.Auctions[j].ID })

	for acct, rec := range m.participants.records {
		s.Participants = append(s.Participants, ParticipantSnapshot{
			Account:  acct,
			Auctions: rec.Auctions(),
		})
	}
	sort.Slice(s.Participants, func(i, j int) bool {
		return s.Participants[i].Account < s.Participants[j].Account
	})
	return s
}

// RestoreManager rebuilds an engine from a snapshot. Ledger ordering and
// record cross-references are re-validated, so a corrupt snapshot fails the
// restore instead of producing a broken engine.
func RestoreManager(s Snapshot, handler AuctionHandler) (*Manager, error) {
	m := NewManager(handler)
	m.now = s.Now
	m.nextID = s.NextID

	for _, as := range s.Auctions {
		if _, ok := m.auctions[as.ID]; ok {
			return nil, fmt.Errorf("duplicate auction id %d in snapshot", as.ID)
		}
		if as.ID >= s.NextID {
			return nil, fmt.Errorf("auction id %d not below next id %d", as.ID, s.NextID)
		}
		status := Status(as.Status)
		if status < StatusPending || status > StatusCancelled {
			return nil, fmt.Errorf("auction %d has unknown status %d", as.ID, as.Status)
		}
		ledger, err := newBidLedgerFromBids(as.Bids)
		if err != nil {
			return nil, fmt.Errorf("auction %d: %w", as.ID, err)
		}
		rec := &AuctionRecord{
			ID:          as.ID,
			Seller:      as.Seller,
			Quantity:    as.Quantity,
			StartingBid: as.StartingBid,
			Memo:        as.Memo,
			Category:    as.Category,
			Period:      as.Period,
			StartAt:     as.StartAt,
			EndAt:       as.EndAt,
			status:      status,
			ledger:      ledger,
			winning:     as.WinningBid,
		}
		m.auctions[as.ID] = rec
		if !status.Terminal() {
			m.schedule.Schedule(as.ID, as.EndAt)
		}
	}

	for _, ps := range s.Participants {
		for _, id := range ps.Auctions {
			if _, ok := m.auctions[id]; !ok {
				return nil, fmt.Errorf("participant %s references unknown auction %d",
					ps.Account, id)
			}
			if err := m.participants.add(ps.Account, id); err != nil {
				return nil, fmt.Errorf("participant %s: %w", ps.Account, err)
			}
		}
	}
	return m, nil
}
