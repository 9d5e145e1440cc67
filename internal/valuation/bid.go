package valuation

import (
	"fmt"
	"math"
)

// Overpay allowances when computing a recommended ceiling.
const (
	overpayStandard = 0.15 // single roster need
	overpayDualNeed = 0.25 // fills two or more needs
)

// MaxBid is the highest affordable bid that still leaves $1 for every
// other unfilled roster slot.
func MaxBid(budgetRemaining, slotsRemaining int) int {
	if slotsRemaining <= 0 {
		return 0
	}
	max := budgetRemaining - (slotsRemaining - 1)
	if max < 0 {
		return 0
	}
	return max
}

// RecommendedMaxBid is the price ceiling worth paying for a player:
// projected value plus a bounded overpay allowance, capped by the
// slot-aware max bid.
func RecommendedMaxBid(projectedValue float64, fillsTwoNeeds bool, maxBid int) int {
	overpay := overpayStandard
	if fillsTwoNeeds {
		overpay = overpayDualNeed
	}

	recommended := projectedValue * (1 + overpay)
	if capped := float64(maxBid); recommended > capped {
		recommended = capped
	}
	if recommended < 0 {
		recommended = 0
	}
	return int(math.Floor(recommended))
}

// BidSeverity colors a bid recommendation.
type BidSeverity string

const (
	SeverityGreen  BidSeverity = "green"
	SeverityOrange BidSeverity = "orange"
	SeverityRed    BidSeverity = "red"
)

// BidRecommendation is the advisor's verdict on a live bid.
type BidRecommendation struct {
	ShouldBid bool        `json:"should_bid"`
	Message   string      `json:"message"`
	Severity  BidSeverity `json:"severity"`
}

// AdviseBid classifies a proposed bid against projected value and the
// slot-aware budget cap. Rules are checked in order and the first match
// wins; all comparisons are strict, so a bid at exactly an overpay
// boundary falls through to the friendlier rule.
func AdviseBid(currentBid int, projectedValue float64, maxBid int) BidRecommendation {
	overpayPercent := 0.0
	if projectedValue > 0 {
		overpayPercent = (float64(currentBid) - projectedValue) / projectedValue * 100
	}

	switch {
	case currentBid > maxBid:
		return BidRecommendation{
			ShouldBid: false,
			Message:   fmt.Sprintf("STOP: $%d exceeds your max bid of $%d", currentBid, maxBid),
			Severity:  SeverityRed,
		}
	case overpayPercent > 25:
		return BidRecommendation{
			ShouldBid: false,
			Message:   fmt.Sprintf("STOP: %.0f%% over projected value", overpayPercent),
			Severity:  SeverityRed,
		}
	case overpayPercent > 15:
		return BidRecommendation{
			ShouldBid: false,
			Message:   fmt.Sprintf("CAUTION: %.0f%% overpay, bid only if he fills 2+ needs", overpayPercent),
			Severity:  SeverityOrange,
		}
	case overpayPercent > 5:
		return BidRecommendation{
			ShouldBid: true,
			Message:   fmt.Sprintf("Slight overpay (%.0f%%), acceptable for a target", overpayPercent),
			Severity:  SeverityOrange,
		}
	}

	return BidRecommendation{
		ShouldBid: true,
		Message:   "Good value at this price",
		Severity:  SeverityGreen,
	}
}
