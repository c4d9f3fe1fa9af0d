package core

// Listing is a seller's terms for a new auction.
type Listing struct {
	Seller      AccountID
	Quantity    Amount
	StartingBid Amount
	Period      Tick
	StartAt     Tick
	Category    Tier
	Memo        string
}

// AuctionRecord is one seller's fixed-quantity listing together with its bid
// ledger and lifecycle state. Records are never deleted; a finalized record
// stays queryable as history.
type AuctionRecord struct {
	ID          uint64
	Seller      AccountID
	Quantity    Amount
	StartingBid Amount
	Memo        string
	Category    Tier
	Period      Tick
	StartAt     Tick
	EndAt       Tick

	status  Status
	ledger  *BidLedger
	winning *Bid
}

func newAuctionRecord(id uint64, l Listing, now Tick) *AuctionRecord {
	status := StatusPending
	if l.StartAt <= now {
		status = StatusActive
	}
	return &AuctionRecord{
		ID:          id,
		Seller:      l.Seller,
		Quantity:    l.Quantity,
		StartingBid: l.StartingBid,
		Memo:        l.Memo,
		Category:    l.Category,
		Period:      l.Period,
		StartAt:     l.StartAt,
		EndAt:       l.StartAt + l.Period,
		status:      status,
		ledger:      NewBidLedger(),
	}
}

// Status returns the committed lifecycle state. Prefer StatusAt for reads:
// a pending record whose start tick has passed is already active in effect,
// the transition just has not been committed by a mutating touch yet.
func (a *AuctionRecord) Status() Status {
	return a.status
}

// StatusAt returns the effective state at the given tick.
func (a *AuctionRecord) StatusAt(now Tick) Status {
	if a.status == StatusPending && now >= a.StartAt {
		return StatusActive
	}
	return a.status
}

// HighestBid returns the standing top bid, if any.
func (a *AuctionRecord) HighestBid() (Bid, bool) {
	return a.ledger.Highest()
}

// WinningBid returns the settlement bid of an ended auction.
func (a *AuctionRecord) WinningBid() (Bid, bool) {
	if a.winning == nil {
		return Bid{}, false
	}
	return *a.winning, true
}

// Bids returns the accepted bids, highest first.
func (a *AuctionRecord) Bids() []Bid {
	return a.ledger.Bids()
}

func (a *AuctionRecord) activate(now Tick) {
	if a.status == StatusPending && now >= a.StartAt {
		a.status = StatusActive
	}
}

// checkBid validates a bid against the window, the self-bidding rule, and
// the ledger without mutating anything.
func (a *AuctionRecord) checkBid(now Tick, bidder AccountID, price Amount) error {
	if a.StatusAt(now) != StatusActive || now < a.StartAt || now >= a.EndAt {
		return ErrAuctionNotActive
	}
	if bidder == a.Seller {
		return ErrInvalidBidder
	}
	if !a.ledger.Beats(price, a.StartingBid) {
		return ErrBidTooLow
	}
	return nil
}

// acceptBid commits a bid the caller already validated with checkBid.
func (a *AuctionRecord) acceptBid(now Tick, b Bid) {
	a.activate(now)
	a.ledger.Accept(b)
}

// cancel applies an explicit cancel request. An auction holding bids is not
// cancellable, and neither is one already finalized.
func (a *AuctionRecord) cancel() error {
	if a.status.Terminal() {
		return ErrAuctionNotCancellable
	}
	if a.ledger.Len() > 0 {
		return ErrAuctionNotCancellable
	}
	a.status = StatusCancelled
	return nil
}

// finalize settles the auction at its end tick: ended with the top bid as
// winner when the ledger is non-empty, cancelled otherwise.
func (a *AuctionRecord) finalize() (Bid, bool) {
	if top, ok := a.ledger.Highest(); ok {
		a.status = StatusEnded
		a.winning = &top
		return top, true
	}
	a.status = StatusCancelled
	return Bid{}, false
}
