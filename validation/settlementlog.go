package validation

import (
	"github.com/rs/zerolog"

	"github.com/gridx-io/openclearing/core"
)

// SettlementLog emits a structured log event for every settlement
// notification. It never vetoes a bid.
type SettlementLog struct {
	logger zerolog.Logger
}

var _ core.AuctionHandler = (*SettlementLog)(nil)

func NewSettlementLog(logger zerolog.Logger) *SettlementLog {
	return &SettlementLog{logger: logger}
}

func (s *SettlementLog) ValidateBid(uint64, core.AccountID, core.Amount) error {
	return nil
}

func (s *SettlementLog) OnAuctionEnded(auctionID uint64, winning core.Bid) {
	s.logger.Info().
		Uint64("auction_id", auctionID).
		Str("winner", string(winning.Bidder)).
		Str("price", winning.Price.String()).
		Msg("auction ended")
}

func (s *SettlementLog) OnAuctionCancelled(auctionID uint64) {
	s.logger.Info().
		Uint64("auction_id", auctionID).
		Msg("auction cancelled")
}
