package engineapi

import (
	"errors"

	"github.com/gridx-io/openclearing/core"
)

// Wire error codes, one per engine rejection kind.
const (
	CodeInvalidParameters     = "invalid_parameters"
	CodeTooManyActiveAuctions = "too_many_active_auctions"
	CodeAuctionNotFound       = "auction_not_found"
	CodeAuctionNotActive      = "auction_not_active"
	CodeBidTooLow             = "bid_too_low"
	CodeInvalidBidder         = "invalid_bidder"
	CodeBidRejectedByHandler  = "bid_rejected_by_handler"
	CodeAuctionNotCancellable = "auction_not_cancellable"
	CodeNotAuthorized         = "not_authorized"
	CodeBadRequest            = "bad_request"
	CodeInternal              = "internal"
)

// CodeForError maps an engine rejection to its wire code.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidParameters):
		return CodeInvalidParameters
	case errors.Is(err, core.ErrTooManyActiveAuctions):
		return CodeTooManyActiveAuctions
	case errors.Is(err, core.ErrAuctionNotFound):
		return CodeAuctionNotFound
	case errors.Is(err, core.ErrAuctionNotActive):
		return CodeAuctionNotActive
	case errors.Is(err, core.ErrBidTooLow):
		return CodeBidTooLow
	case errors.Is(err, core.ErrInvalidBidder):
		return CodeInvalidBidder
	case errors.Is(err, core.ErrBidRejectedByHandler):
		return CodeBidRejectedByHandler
	case errors.Is(err, core.ErrAuctionNotCancellable):
		return CodeAuctionNotCancellable
	case errors.Is(err, core.ErrNotAuthorized):
		return CodeNotAuthorized
	default:
		return CodeInternal
	}
}
