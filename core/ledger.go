package core

import (
	"fmt"

	"github.com/gammazero/deque"
)

// BidLedger is the ordered record of every bid accepted into one auction,
// strictly descending by price. Each accepted bid must strictly beat the
// standing maximum, so insertion is always a front push and the full audit
// history is retained behind it.
type BidLedger struct {
	bids *deque.Deque[Bid]
}

func NewBidLedger() *BidLedger {
	return &BidLedger{bids: deque.New[Bid]()}
}

// newBidLedgerFromBids rebuilds a ledger from a stored record, highest bid
// first. The strict descending order is re-verified so a corrupt snapshot
// cannot resurrect a broken ledger.
func newBidLedgerFromBids(bids []Bid) (*BidLedger, error) {
	l := NewBidLedger()
	for i, b := range bids {
		if i > 0 && !bids[i-1].Price.GreaterThan(b.Price) {
			return nil, fmt.Errorf("stored bids out of order at index %d: %s then %s",
				i, bids[i-1].Price, b.Price)
		}
		l.bids.PushBack(b)
	}
	return l, nil
}

func (l *BidLedger) Len() int {
	return l.bids.Len()
}

// Highest returns the standing top bid, if any.
func (l *BidLedger) Highest() (Bid, bool) {
	if l.bids.Len() == 0 {
		return Bid{}, false
	}
	return l.bids.Front(), true
}

// Beats reports whether price would be accepted against the current ledger
// state given the listing floor. Ties lose: a bid must strictly exceed the
// standing highest bid, or the floor when no bids exist.
func (l *BidLedger) Beats(price, startingBid Amount) bool {
	if top, ok := l.Highest(); ok {
		return price.GreaterThan(top.Price)
	}
	return price.GreaterThan(startingBid)
}

// Accept records a bid as the new maximum. The caller must have already
// established that the price beats the ledger; Accept re-checks and panics
// otherwise, since a violated ordering invariant means engine state is
// already corrupt.
func (l *BidLedger) Accept(b Bid) {
	if top, ok := l.Highest(); ok && !b.Price.GreaterThan(top.Price) {
		panic(fmt.Sprintf("bid ledger ordering violated: %s does not beat standing %s",
			b.Price, top.Price))
	}
	l.bids.PushFront(b)
}

// Bids returns a copy of the accepted bids, highest first.
func (l *BidLedger) Bids() []Bid {
	out := make([]Bid, l.bids.Len())
	for i := 0; i < l.bids.Len(); i++ {
		out[i] = l.bids.At(i)
	}
	return out
}

// Bidders returns the distinct accounts holding bids in the ledger.
func (l *BidLedger) Bidders() []AccountID {
	seen := make(map[AccountID]struct{}, l.bids.Len())
	out := make([]AccountID, 0, l.bids.Len())
	for i := 0; i < l.bids.Len(); i++ {
		b := l.bids.At(i)
		if _, ok := seen[b.Bidder]; ok {
			continue
		}
		seen[b.Bidder] = struct{}{}
		out = append(out, b.Bidder)
	}
	return out
}
