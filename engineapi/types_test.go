package engineapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/gridx-io/openclearing/core"
)

func TestAuctionInfoFromView(t *testing.T) {
	top := core.Bid{Bidder: "bob", Price: decimal.NewFromFloat(150.25)}
	view := core.AuctionView{
		ID:          7,
		Seller:      "seller",
		Quantity:    decimal.NewFromInt(10),
		StartingBid: decimal.NewFromInt(100),
		Memo:        "west feeder",
		Category:    core.Tier{Level: 2},
		Period:      10,
		StartAt:     5,
		EndAt:       15,
		Status:      core.StatusActive,
		HighestBid:  &top,
		Bids: []core.Bid{
			top,
			{Bidder: "alice", Price: decimal.NewFromInt(101)},
		},
	}

	info := AuctionInfoFromView(view)
	check.Equal(t, uint64(7), info.ID)
	check.Equal(t, "active", info.Status)
	check.Equal(t, "150.25", info.HighestBid.Price)
	check.Nil(t, info.WinningBid)
	assert.Equal(t, 2, len(info.Bids))
	check.Equal(t, BidInfo{Bidder: "alice", Price: "101"}, info.Bids[1])

	// The wire form round-trips through JSON without losing the price
	// precision carried in the decimal strings.
	data, err := json.Marshal(info)
	assert.Nil(t, err)
	var decoded AuctionInfo
	assert.Nil(t, json.Unmarshal(data, &decoded))
	check.Equal(t, *info, decoded)
}

func TestParticipantInfoFromViewEmpty(t *testing.T) {
	info := ParticipantInfoFromView(core.ParticipantView{Account: "ghost"})
	check.Equal(t, "ghost", info.Account)
	// Renders as [] rather than null.
	check.Equal(t, []uint64{}, info.Auctions)
}

func TestSettlementInfosFrom(t *testing.T) {
	win := core.Bid{Bidder: "alice", Price: decimal.NewFromInt(150)}
	infos := SettlementInfosFrom([]core.Settlement{
		{AuctionID: 1, Winner: &win},
		{AuctionID: 2},
	})

	assert.Equal(t, 2, len(infos))
	check.Equal(t, BidInfo{Bidder: "alice", Price: "150"}, *infos[0].Winner)
	check.Nil(t, infos[1].Winner)
}

func TestCodeForError(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{core.ErrInvalidParameters, CodeInvalidParameters},
		{core.ErrTooManyActiveAuctions, CodeTooManyActiveAuctions},
		{core.ErrAuctionNotFound, CodeAuctionNotFound},
		{core.ErrAuctionNotActive, CodeAuctionNotActive},
		{core.ErrBidTooLow, CodeBidTooLow},
		{core.ErrInvalidBidder, CodeInvalidBidder},
		{core.ErrBidRejectedByHandler, CodeBidRejectedByHandler},
		{core.ErrAuctionNotCancellable, CodeAuctionNotCancellable},
		{core.ErrNotAuthorized, CodeNotAuthorized},
		{errors.New("disk on fire"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			check.Equal(t, tt.expected, CodeForError(tt.err))
			// Wrapped rejections map to the same code.
			check.Equal(t, tt.expected, CodeForError(fmt.Errorf("context: %w", tt.err)))
		})
	}
}
