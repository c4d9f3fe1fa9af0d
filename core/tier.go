package core

import "github.com/shopspring/decimal"

// Tier groups listings by commodity class for discovery. The matching
// algorithm never reads it.
type Tier struct {
	Level uint32 `json:"level" cbor:"level"`
}

// Quantity thresholds for the default tier ladder, in KWH.
var tierSplit = decimal.NewFromInt(5)

// TierForQuantity derives the discovery tier from the listed quantity:
// small lots are tier 1, everything else tier 2. Hosts that want a custom
// tier pass one explicitly at creation instead.
func TierForQuantity(quantity Amount) Tier {
	if quantity.LessThan(tierSplit) {
		return Tier{Level: 1}
	}
	return Tier{Level: 2}
}
