package core

// AuctionHandler is the host-supplied validation and notification capability.
//
// ValidateBid runs synchronously during bid acceptance and may veto; a veto
// leaves the ledger untouched. OnAuctionEnded and OnAuctionCancelled run
// synchronously after the status transition is committed, at most once per
// auction. They have no error return: a failing downstream consumer cannot
// unwind a committed transition, recovery is the host's concern.
//
// Implementations are invoked while the engine lock is held and must not
// call back into the Manager.
type AuctionHandler interface {
	ValidateBid(auctionID uint64, bidder AccountID, price Amount) error
	OnAuctionEnded(auctionID uint64, winning Bid)
	OnAuctionCancelled(auctionID uint64)
}

// NopHandler accepts every bid and ignores every notification.
type NopHandler struct{}

func (NopHandler) ValidateBid(uint64, AccountID, Amount) error { return nil }
func (NopHandler) OnAuctionEnded(uint64, Bid)                  {}
func (NopHandler) OnAuctionCancelled(uint64)                   {}
