// Package validation supplies host-side implementations of the engine's
// validation/notification capability.
package validation

import (
	"fmt"

	"github.com/gridx-io/openclearing/core"
)

// BidPolicy vets bids before the engine accepts them. Zero-value fields
// disable their checks, so an empty policy accepts everything.
type BidPolicy struct {
	// PriceCeiling rejects bids strictly above it. A sanity bound against
	// fat-fingered prices, not a market rule.
	PriceCeiling core.Amount

	// Blocked lists accounts whose bids are always vetoed.
	Blocked map[core.AccountID]struct{}
}

var _ core.AuctionHandler = (*BidPolicy)(nil)

func (p *BidPolicy) ValidateBid(auctionID uint64, bidder core.AccountID, price core.Amount) error {
	if _, blocked := p.Blocked[bidder]; blocked {
		return fmt.Errorf("bidder %s is blocked", bidder)
	}
	if p.PriceCeiling.Sign() > 0 && price.GreaterThan(p.PriceCeiling) {
		return fmt.Errorf("price %s exceeds ceiling %s", price, p.PriceCeiling)
	}
	return nil
}

func (p *BidPolicy) OnAuctionEnded(uint64, core.Bid) {}

func (p *BidPolicy) OnAuctionCancelled(uint64) {}
