package core

import "github.com/shopspring/decimal"

// AccountID identifies an auction participant. The engine only ever compares
// it for equality; resolving it to a real account is the host's concern.
type AccountID string

// Tick is one discrete advance of the host's logical clock. The engine never
// reads wall-clock time; the host delivers ticks through Manager.AdvanceTo.
type Tick uint64

// Amount is a price or an energy quantity. Decimal arithmetic avoids
// floating-point drift in price comparisons.
type Amount = decimal.Decimal

// Bid is a single accepted bid. Immutable once in a ledger.
type Bid struct {
	Bidder AccountID `json:"bidder" cbor:"bidder"`
	Price  Amount    `json:"price" cbor:"price"`
}

// Status is the lifecycle state of an auction.
type Status int

const (
	// StatusPending auctions have been created but their bidding window has
	// not opened yet.
	StatusPending Status = iota

	// StatusActive auctions accept bids.
	StatusActive

	// StatusEnded auctions settled with a winning bid. Terminal.
	StatusEnded

	// StatusCancelled auctions finished without a winner, either by an
	// explicit cancel or by expiring with an empty ledger. Terminal.
	StatusCancelled
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusEnded || s == StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Settlement is the outcome of one finalized auction. Winner is nil when the
// auction expired without bids and resolved to cancelled.
type Settlement struct {
	AuctionID uint64
	Winner    *Bid
}
