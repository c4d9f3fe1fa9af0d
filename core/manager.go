package core

import (
	"fmt"
	"sync"
)

// Manager orchestrates the auction engine: it owns the auctions table, the
// participant index, and the execution schedule, and serializes every
// operation behind one lock. Multiple independent managers may coexist;
// nothing is process-global.
type Manager struct {
	mu           sync.Mutex
	handler      AuctionHandler
	auctions     map[uint64]*AuctionRecord
	participants *ParticipantIndex
	schedule     *ExecutionSchedule
	nextID       uint64
	now          Tick
}

// NewManager builds an empty engine. A nil handler accepts every bid and
// drops every notification.
func NewManager(handler AuctionHandler) *Manager {
	if handler == nil {
		handler = NopHandler{}
	}
	return &Manager{
		handler:      handler,
		auctions:     make(map[uint64]*AuctionRecord),
		participants: NewParticipantIndex(),
		schedule:     NewExecutionSchedule(),
		nextID:       1,
	}
}

// Now returns the last tick delivered by the host clock.
func (m *Manager) Now() Tick {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Create opens a new auction under a fresh id, registers the seller in the
// participant index, and schedules finalization at StartAt+Period. On any
// error nothing is committed.
func (m *Manager) Create(l Listing) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l.Quantity.Sign() <= 0 || l.StartingBid.Sign() <= 0 || l.Period == 0 {
		return 0, fmt.Errorf("%w: quantity, starting bid, and period must be positive",
			ErrInvalidParameters)
	}
	endAt := l.StartAt + l.Period
	if endAt <= m.now {
		return 0, fmt.Errorf("%w: listing would end at tick %d, clock is at %d",
			ErrInvalidParameters, endAt, m.now)
	}

	id := m.nextID
	if err := m.participants.add(l.Seller, id); err != nil {
		return 0, err
	}
	m.auctions[id] = newAuctionRecord(id, l, m.now)
	m.schedule.Schedule(id, endAt)
	m.nextID++
	return id, nil
}

// Bid submits a price against an active auction. The price must strictly
// beat the standing highest bid (or the starting bid on an empty ledger),
// the handler may veto, and the bidder must fit in the participant index.
// All checks run before any mutation.
func (m *Manager) Bid(caller AccountID, auctionID uint64, price Amount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.auctions[auctionID]
	if !ok {
		return fmt.Errorf("%w: auction %d", ErrAuctionNotFound, auctionID)
	}
	if err := rec.checkBid(m.now, caller, price); err != nil {
		return err
	}
	if err := m.handler.ValidateBid(auctionID, caller, price); err != nil {
		return fmt.Errorf("%w: %v", ErrBidRejectedByHandler, err)
	}
	if err := m.participants.add(caller, auctionID); err != nil {
		return err
	}
	rec.acceptBid(m.now, Bid{Bidder: caller, Price: price})
	return nil
}

// Cancel withdraws an auction before any bid lands. Only the seller of
// record may cancel, and an auction holding bids runs to natural expiry
// instead. A successful cancel unschedules the auction and notifies the
// handler once.
func (m *Manager) Cancel(caller AccountID, auctionID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.auctions[auctionID]
	if !ok {
		return fmt.Errorf("%w: auction %d", ErrAuctionNotFound, auctionID)
	}
	if caller != rec.Seller {
		return ErrNotAuthorized
	}
	if err := rec.cancel(); err != nil {
		return err
	}
	m.schedule.Unschedule(auctionID, rec.EndAt)
	m.retire(rec)
	m.handler.OnAuctionCancelled(auctionID)
	return nil
}

// AdvanceTo delivers one tick of the host's logical clock and finalizes
// every auction whose deadline equals it. Ticks must be strictly
// increasing; a replayed tick finds its bucket already drained. Returns
// the settlements the sweep produced.
func (m *Manager) AdvanceTo(now Tick) []Settlement {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
	var settled []Settlement
	for _, id := range m.schedule.PopDue(now) {
		rec, ok := m.auctions[id]
		if !ok || rec.Status().Terminal() {
			// Cancellation removes the bucket entry, so a finalized record
			// here is unexpected; skip rather than settle twice.
			continue
		}
		win, won := rec.finalize()
		m.retire(rec)
		if won {
			settled = append(settled, Settlement{AuctionID: id, Winner: &win})
			m.handler.OnAuctionEnded(id, win)
		} else {
			settled = append(settled, Settlement{AuctionID: id})
			m.handler.OnAuctionCancelled(id)
		}
	}
	return settled
}

// retire prunes a finalized auction from every participant record that
// references it. The auctions table keeps the record as history.
func (m *Manager) retire(rec *AuctionRecord) {
	m.participants.remove(rec.Seller, rec.ID)
	for _, bidder := range rec.ledger.Bidders() {
		m.participants.remove(bidder, rec.ID)
	}
}

// AuctionView is a read-only copy of an auction record. Status reports the
// effective state at the engine's current tick.
type AuctionView struct {
	ID          uint64
	Seller      AccountID
	Quantity    Amount
	StartingBid Amount
	Memo        string
	Category    Tier
	Period      Tick
	StartAt     Tick
	EndAt       Tick
	Status      Status
	HighestBid  *Bid
	WinningBid  *Bid
	Bids        []Bid
}

// ParticipantView is a read-only copy of a participant record.
type ParticipantView struct {
	Account  AccountID
	Auctions []uint64
}

// Auction returns a snapshot of the auction with the given id.
func (m *Manager) Auction(id uint64) (AuctionView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.auctions[id]
	if !ok {
		return AuctionView{}, false
	}
	view := AuctionView{
		ID:          rec.ID,
		Seller:      rec.Seller,
		Quantity:    rec.Quantity,
		StartingBid: rec.StartingBid,
		Memo:        rec.Memo,
		Category:    rec.Category,
		Period:      rec.Period,
		StartAt:     rec.StartAt,
		EndAt:       rec.EndAt,
		Status:      rec.StatusAt(m.now),
		Bids:        rec.Bids(),
	}
	if top, ok := rec.HighestBid(); ok {
		view.HighestBid = &top
	}
	if win, ok := rec.WinningBid(); ok {
		view.WinningBid = &win
	}
	return view, true
}

// Participant returns a snapshot of the account's current involvement. An
// account with no open involvement reports an empty list.
func (m *Manager) Participant(acct AccountID) ParticipantView {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := ParticipantView{Account: acct}
	if rec, ok := m.participants.Record(acct); ok {
		view.Auctions = rec.Auctions()
	}
	return view
}
