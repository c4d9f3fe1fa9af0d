package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gridx-io/openclearing/core"
	"github.com/gridx-io/openclearing/engineapi"
	"github.com/gridx-io/openclearing/store"
)

// EngineService applies decoded wire requests to the auction manager and
// persists snapshots to keyed storage on request.
type EngineService struct {
	manager     *core.Manager
	kv          store.KV
	snapshotKey string
}

func NewEngineService(manager *core.Manager, kv store.KV, snapshotKey string) *EngineService {
	return &EngineService{manager: manager, kv: kv, snapshotKey: snapshotKey}
}

func failure(reqType, code, format string, args ...any) engineapi.Response {
	return engineapi.Response{
		Type:    reqType,
		Success: false,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func rejected(reqType string, err error) engineapi.Response {
	return failure(reqType, engineapi.CodeForError(err), "%v", err)
}

// Handle decodes one request and applies it. It always produces a response;
// malformed input maps to a bad_request failure.
func (s *EngineService) Handle(raw []byte) engineapi.Response {
	var base engineapi.BaseRequest
	if err := json.Unmarshal(raw, &base); err != nil {
		return failure("error", engineapi.CodeBadRequest, "failed to decode request: %v", err)
	}

	switch base.Type {
	case engineapi.TypePing:
		return engineapi.Response{Type: "pong", Success: true, Message: "engine is healthy"}

	case engineapi.TypeCreateAuction:
		var req engineapi.CreateAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode create request: %v", err)
		}
		return s.handleCreate(req)

	case engineapi.TypeBid:
		var req engineapi.BidRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode bid request: %v", err)
		}
		return s.handleBid(req)

	case engineapi.TypeCancelAuction:
		var req engineapi.CancelAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode cancel request: %v", err)
		}
		return s.handleCancel(req)

	case engineapi.TypeAdvance:
		var req engineapi.AdvanceRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode advance request: %v", err)
		}
		return s.handleAdvance(req)

	case engineapi.TypeGetAuction:
		var req engineapi.GetAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode auction query: %v", err)
		}
		return s.handleGetAuction(req)

	case engineapi.TypeGetParticipant:
		var req engineapi.GetParticipantRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return failure(base.Type, engineapi.CodeBadRequest, "failed to decode participant query: %v", err)
		}
		return s.handleGetParticipant(req)

	case engineapi.TypeSnapshot:
		return s.handleSnapshot()

	default:
		return failure("error", engineapi.CodeBadRequest, "unknown request type: %s", base.Type)
	}
}

func (s *EngineService) handleCreate(req engineapi.CreateAuctionRequest) engineapi.Response {
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return failure(req.Type, engineapi.CodeBadRequest, "invalid quantity %q: %v", req.Quantity, err)
	}
	startingBid, err := decimal.NewFromString(req.StartingBid)
	if err != nil {
		return failure(req.Type, engineapi.CodeBadRequest, "invalid starting bid %q: %v", req.StartingBid, err)
	}

	tier := core.Tier{Level: req.TierLevel}
	if req.TierLevel == 0 {
		tier = core.TierForQuantity(quantity)
	}

	id, err := s.manager.Create(core.Listing{
		Seller:      core.AccountID(req.Seller),
		Quantity:    quantity,
		StartingBid: startingBid,
		Period:      core.Tick(req.Period),
		StartAt:     core.Tick(req.StartAt),
		Category:    tier,
		Memo:        req.Memo,
	})
	if err != nil {
		return rejected(req.Type, err)
	}

	log.Info().
		Uint64("auction_id", id).
		Str("seller", req.Seller).
		Str("quantity", quantity.String()).
		Str("starting_bid", startingBid.String()).
		Uint32("tier_level", tier.Level).
		Msg("auction created")
	return engineapi.Response{Type: req.Type, Success: true, AuctionID: id}
}

func (s *EngineService) handleBid(req engineapi.BidRequest) engineapi.Response {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return failure(req.Type, engineapi.CodeBadRequest, "invalid price %q: %v", req.Price, err)
	}

	if err := s.manager.Bid(core.AccountID(req.Bidder), req.AuctionID, price); err != nil {
		return rejected(req.Type, err)
	}

	log.Info().
		Uint64("auction_id", req.AuctionID).
		Str("bidder", req.Bidder).
		Str("price", price.String()).
		Msg("bid accepted")
	return engineapi.Response{Type: req.Type, Success: true, AuctionID: req.AuctionID}
}

func (s *EngineService) handleCancel(req engineapi.CancelAuctionRequest) engineapi.Response {
	if err := s.manager.Cancel(core.AccountID(req.Caller), req.AuctionID); err != nil {
		return rejected(req.Type, err)
	}

	log.Info().Uint64("auction_id", req.AuctionID).Msg("auction cancelled by seller")
	return engineapi.Response{Type: req.Type, Success: true, AuctionID: req.AuctionID}
}

func (s *EngineService) handleAdvance(req engineapi.AdvanceRequest) engineapi.Response {
	settled := s.manager.AdvanceTo(core.Tick(req.Now))

	log.Info().Uint64("now", req.Now).Int("settled", len(settled)).Msg("clock advanced")
	return engineapi.Response{
		Type:        req.Type,
		Success:     true,
		Settlements: engineapi.SettlementInfosFrom(settled),
	}
}

func (s *EngineService) handleGetAuction(req engineapi.GetAuctionRequest) engineapi.Response {
	view, ok := s.manager.Auction(req.AuctionID)
	if !ok {
		return failure(req.Type, engineapi.CodeAuctionNotFound, "auction %d does not exist", req.AuctionID)
	}
	return engineapi.Response{
		Type:    req.Type,
		Success: true,
		Auction: engineapi.AuctionInfoFromView(view),
	}
}

func (s *EngineService) handleGetParticipant(req engineapi.GetParticipantRequest) engineapi.Response {
	view := s.manager.Participant(core.AccountID(req.Account))
	return engineapi.Response{
		Type:        req.Type,
		Success:     true,
		Participant: engineapi.ParticipantInfoFromView(view),
	}
}

func (s *EngineService) handleSnapshot() engineapi.Response {
	if err := store.SaveSnapshot(s.kv, s.snapshotKey, s.manager.Snapshot()); err != nil {
		log.Error().Err(err).Msg("snapshot failed")
		return failure(engineapi.TypeSnapshot, engineapi.CodeInternal, "snapshot failed: %v", err)
	}

	log.Info().Str("key", s.snapshotKey).Msg("snapshot persisted")
	return engineapi.Response{Type: engineapi.TypeSnapshot, Success: true, Message: s.snapshotKey}
}
