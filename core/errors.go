package core

import "errors"

// Every engine operation either succeeds or returns one of these rejection
// kinds with no partial mutation left behind. Callers match with errors.Is;
// operations may wrap a kind with extra context.
var (
	// ErrInvalidParameters rejects a listing with a zero quantity, starting
	// bid, or period, or one that could never reach its end tick.
	ErrInvalidParameters = errors.New("invalid auction parameters")

	// ErrTooManyActiveAuctions rejects an operation that would push a
	// participant past the per-account auction limit.
	ErrTooManyActiveAuctions = errors.New("participant auction limit reached")

	// ErrAuctionNotFound rejects a reference to an unknown auction id.
	ErrAuctionNotFound = errors.New("auction does not exist")

	// ErrAuctionNotActive rejects a bid outside the auction's bidding window.
	ErrAuctionNotActive = errors.New("auction is not accepting bids")

	// ErrBidTooLow rejects a price that does not strictly beat the standing
	// highest bid, or the starting bid when the ledger is empty.
	ErrBidTooLow = errors.New("bid does not beat the current price")

	// ErrInvalidBidder rejects a seller bidding on its own auction.
	ErrInvalidBidder = errors.New("seller cannot bid on own auction")

	// ErrBidRejectedByHandler reports a veto from the host's validation
	// capability. The ledger is left untouched.
	ErrBidRejectedByHandler = errors.New("bid rejected by handler")

	// ErrAuctionNotCancellable rejects a cancel on an auction holding bids
	// or one already in a terminal state. A live competitive bid is never
	// discarded; the auction runs to its natural expiry.
	ErrAuctionNotCancellable = errors.New("auction cannot be cancelled")

	// ErrNotAuthorized rejects a cancel from anyone but the seller of record.
	ErrNotAuthorized = errors.New("caller is not the seller of record")
)
