// Package engineapi defines the JSON request/response types served by the
// engine daemon. Every request carries a "type" discriminator; amounts
// travel as decimal strings so no precision is lost on the wire.
package engineapi

import (
	"github.com/gridx-io/openclearing/core"
)

// Request type discriminators.
const (
	TypePing           = "ping"
	TypeCreateAuction  = "create_auction"
	TypeBid            = "bid"
	TypeCancelAuction  = "cancel_auction"
	TypeAdvance        = "advance"
	TypeGetAuction     = "get_auction"
	TypeGetParticipant = "get_participant"
	TypeSnapshot       = "snapshot"
)

// BaseRequest is decoded first to pick the concrete request type.
type BaseRequest struct {
	Type string `json:"type"`
}

// CreateAuctionRequest opens a new listing. TierLevel zero asks the daemon
// to derive the tier from the quantity.
type CreateAuctionRequest struct {
	Type        string `json:"type"`
	Seller      string `json:"seller"`
	Quantity    string `json:"quantity"`
	StartingBid string `json:"starting_bid"`
	Period      uint64 `json:"period"`
	StartAt     uint64 `json:"start_at"`
	TierLevel   uint32 `json:"tier_level,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

type BidRequest struct {
	Type      string `json:"type"`
	Bidder    string `json:"bidder"`
	AuctionID uint64 `json:"auction_id"`
	Price     string `json:"price"`
}

type CancelAuctionRequest struct {
	Type      string `json:"type"`
	Caller    string `json:"caller"`
	AuctionID uint64 `json:"auction_id"`
}

// AdvanceRequest delivers one tick of the host's logical clock.
type AdvanceRequest struct {
	Type string `json:"type"`
	Now  uint64 `json:"now"`
}

type GetAuctionRequest struct {
	Type      string `json:"type"`
	AuctionID uint64 `json:"auction_id"`
}

type GetParticipantRequest struct {
	Type    string `json:"type"`
	Account string `json:"account"`
}

// Response is the single reply shape for every request type. Code carries
// the engine rejection kind when Success is false.
type Response struct {
	Type        string           `json:"type"`
	Success     bool             `json:"success"`
	Message     string           `json:"message,omitempty"`
	Code        string           `json:"code,omitempty"`
	AuctionID   uint64           `json:"auction_id,omitempty"`
	Auction     *AuctionInfo     `json:"auction,omitempty"`
	Participant *ParticipantInfo `json:"participant,omitempty"`
	Settlements []SettlementInfo `json:"settlements,omitempty"`
}

// BidInfo is the wire form of one accepted bid.
type BidInfo struct {
	Bidder string `json:"bidder"`
	Price  string `json:"price"`
}

// AuctionInfo is the wire form of an auction record snapshot.
type AuctionInfo struct {
	ID          uint64    `json:"id"`
	Seller      string    `json:"seller"`
	Quantity    string    `json:"quantity"`
	StartingBid string    `json:"starting_bid"`
	Memo        string    `json:"memo,omitempty"`
	TierLevel   uint32    `json:"tier_level"`
	Period      uint64    `json:"period"`
	StartAt     uint64    `json:"start_at"`
	EndAt       uint64    `json:"end_at"`
	Status      string    `json:"status"`
	HighestBid  *BidInfo  `json:"highest_bid,omitempty"`
	WinningBid  *BidInfo  `json:"winning_bid,omitempty"`
	Bids        []BidInfo `json:"bids,omitempty"`
}

// ParticipantInfo is the wire form of a participant record snapshot.
type ParticipantInfo struct {
	Account  string   `json:"account"`
	Auctions []uint64 `json:"auctions"`
}

// SettlementInfo is the wire form of one sweep outcome.
type SettlementInfo struct {
	AuctionID uint64   `json:"auction_id"`
	Winner    *BidInfo `json:"winner,omitempty"`
}

func bidInfo(b core.Bid) *BidInfo {
	return &BidInfo{Bidder: string(b.Bidder), Price: b.Price.String()}
}

// AuctionInfoFromView converts an engine view to its wire form.
func AuctionInfoFromView(v core.AuctionView) *AuctionInfo {
	info := &AuctionInfo{
		ID:          v.ID,
		Seller:      string(v.Seller),
		Quantity:    v.Quantity.String(),
		StartingBid: v.StartingBid.String(),
		Memo:        v.Memo,
		TierLevel:   v.Category.Level,
		Period:      uint64(v.Period),
		StartAt:     uint64(v.StartAt),
		EndAt:       uint64(v.EndAt),
		Status:      v.Status.String(),
	}
	if v.HighestBid != nil {
		info.HighestBid = bidInfo(*v.HighestBid)
	}
	if v.WinningBid != nil {
		info.WinningBid = bidInfo(*v.WinningBid)
	}
	for _, b := range v.Bids {
		info.Bids = append(info.Bids, *bidInfo(b))
	}
	return info
}

// ParticipantInfoFromView converts an engine view to its wire form.
func ParticipantInfoFromView(v core.ParticipantView) *ParticipantInfo {
	info := &ParticipantInfo{Account: string(v.Account), Auctions: v.Auctions}
	if info.Auctions == nil {
		info.Auctions = []uint64{}
	}
	return info
}

// SettlementInfosFrom converts sweep outcomes to their wire form.
func SettlementInfosFrom(settled []core.Settlement) []SettlementInfo {
	out := make([]SettlementInfo, 0, len(settled))
	for _, s := range settled {
		info := SettlementInfo{AuctionID: s.AuctionID}
		if s.Winner != nil {
			info.Winner = bidInfo(*s.Winner)
		}
		out = append(out, info)
	}
	return out
}
