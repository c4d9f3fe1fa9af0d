package main

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/gridx-io/openclearing/core"
	"github.com/gridx-io/openclearing/engineapi"
	"github.com/gridx-io/openclearing/store"
)

func newTestService() (*EngineService, *store.MemKV) {
	kv := store.NewMemKV()
	return NewEngineService(core.NewManager(nil), kv, "engine/state"), kv
}

func handleJSON(t *testing.T, svc *EngineService, req any) engineapi.Response {
	t.Helper()
	raw, err := json.Marshal(req)
	assert.Nil(t, err)
	return svc.Handle(raw)
}

func TestHandlePing(t *testing.T) {
	svc, _ := newTestService()
	resp := svc.Handle([]byte(`{"type":"ping"}`))
	check.True(t, resp.Success)
	check.Equal(t, "pong", resp.Type)
}

func TestHandleMalformedRequests(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"unknown type", `{"type":"drop_tables"}`},
		{"bad quantity", `{"type":"create_auction","seller":"s","quantity":"ten","starting_bid":"100","period":10}`},
		{"bad price", `{"type":"bid","bidder":"alice","auction_id":1,"price":"1e"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := svc.Handle([]byte(tt.raw))
			check.False(t, resp.Success)
			check.Equal(t, engineapi.CodeBadRequest, resp.Code)
		})
	}
}

func TestHandleAuctionLifecycle(t *testing.T) {
	svc, _ := newTestService()

	resp := handleJSON(t, svc, engineapi.CreateAuctionRequest{
		Type:        engineapi.TypeCreateAuction,
		Seller:      "seller",
		Quantity:    "10",
		StartingBid: "100",
		Period:      10,
		StartAt:     5,
	})
	assert.True(t, resp.Success)
	id := resp.AuctionID
	check.NotEqual(t, uint64(0), id)

	// Tier was derived from the quantity.
	resp = handleJSON(t, svc, engineapi.GetAuctionRequest{Type: engineapi.TypeGetAuction, AuctionID: id})
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Auction)
	check.Equal(t, uint32(2), resp.Auction.TierLevel)
	check.Equal(t, "pending", resp.Auction.Status)

	resp = handleJSON(t, svc, engineapi.AdvanceRequest{Type: engineapi.TypeAdvance, Now: 5})
	assert.True(t, resp.Success)
	check.Equal(t, 0, len(resp.Settlements))

	resp = handleJSON(t, svc, engineapi.BidRequest{Type: engineapi.TypeBid, Bidder: "alice", AuctionID: id, Price: "90"})
	check.False(t, resp.Success)
	check.Equal(t, engineapi.CodeBidTooLow, resp.Code)

	resp = handleJSON(t, svc, engineapi.BidRequest{Type: engineapi.TypeBid, Bidder: "alice", AuctionID: id, Price: "101"})
	check.True(t, resp.Success)
	resp = handleJSON(t, svc, engineapi.BidRequest{Type: engineapi.TypeBid, Bidder: "bob", AuctionID: id, Price: "150.25"})
	check.True(t, resp.Success)

	resp = handleJSON(t, svc, engineapi.GetParticipantRequest{Type: engineapi.TypeGetParticipant, Account: "alice"})
	assert.True(t, resp.Success)
	check.Equal(t, []uint64{id}, resp.Participant.Auctions)

	resp = handleJSON(t, svc, engineapi.CancelAuctionRequest{Type: engineapi.TypeCancelAuction, Caller: "seller", AuctionID: id})
	check.False(t, resp.Success)
	check.Equal(t, engineapi.CodeAuctionNotCancellable, resp.Code)

	resp = handleJSON(t, svc, engineapi.AdvanceRequest{Type: engineapi.TypeAdvance, Now: 15})
	assert.True(t, resp.Success)
	assert.Equal(t, 1, len(resp.Settlements))
	assert.NotNil(t, resp.Settlements[0].Winner)
	check.Equal(t, engineapi.BidInfo{Bidder: "bob", Price: "150.25"}, *resp.Settlements[0].Winner)

	resp = handleJSON(t, svc, engineapi.GetAuctionRequest{Type: engineapi.TypeGetAuction, AuctionID: id})
	assert.True(t, resp.Success)
	check.Equal(t, "ended", resp.Auction.Status)
	assert.NotNil(t, resp.Auction.WinningBid)
	check.Equal(t, "150.25", resp.Auction.WinningBid.Price)
}

func TestHandleErrorCodesPassThrough(t *testing.T) {
	svc, _ := newTestService()

	resp := handleJSON(t, svc, engineapi.CreateAuctionRequest{
		Type: engineapi.TypeCreateAuction, Seller: "s", Quantity: "0", StartingBid: "100", Period: 10,
	})
	check.False(t, resp.Success)
	check.Equal(t, engineapi.CodeInvalidParameters, resp.Code)

	resp = handleJSON(t, svc, engineapi.BidRequest{Type: engineapi.TypeBid, Bidder: "alice", AuctionID: 42, Price: "10"})
	check.False(t, resp.Success)
	check.Equal(t, engineapi.CodeAuctionNotFound, resp.Code)

	resp = handleJSON(t, svc, engineapi.GetAuctionRequest{Type: engineapi.TypeGetAuction, AuctionID: 42})
	check.False(t, resp.Success)
	check.Equal(t, engineapi.CodeAuctionNotFound, resp.Code)
}

func TestHandleSnapshotPersistsState(t *testing.T) {
	svc, kv := newTestService()

	for i := 0; i < 3; i++ {
		resp := handleJSON(t, svc, engineapi.CreateAuctionRequest{
			Type:        engineapi.TypeCreateAuction,
			Seller:      fmt.Sprintf("seller_%d", i),
			Quantity:    "10",
			StartingBid: "100",
			Period:      10,
		})
		assert.True(t, resp.Success)
	}

	resp := svc.Handle([]byte(`{"type":"snapshot"}`))
	assert.True(t, resp.Success)

	state, ok, err := store.LoadSnapshot(kv, "engine/state")
	assert.Nil(t, err)
	assert.True(t, ok)
	check.Equal(t, 3, len(state.Auctions))

	restored, err := core.RestoreManager(state, nil)
	assert.Nil(t, err)
	_, ok = restored.Auction(3)
	check.True(t, ok)
}
