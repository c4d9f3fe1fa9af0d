package validation

import "github.com/gridx-io/openclearing/core"

// Chain fans each handler call out to several implementations in order. The
// first validation veto wins; notifications reach every element.
type Chain []core.AuctionHandler

var _ core.AuctionHandler = Chain(nil)

func (c Chain) ValidateBid(auctionID uint64, bidder core.AccountID, price core.Amount) error {
	for _, h := range c {
		if err := h.ValidateBid(auctionID, bidder, price); err != nil {
			return err
		}
	}
	return nil
}

func (c Chain) OnAuctionEnded(auctionID uint64, winning core.Bid) {
	for _, h := range c {
		h.OnAuctionEnded(auctionID, winning)
	}
}

func (c Chain) OnAuctionCancelled(auctionID uint64) {
	for _, h := range c {
		h.OnAuctionCancelled(auctionID)
	}
}
