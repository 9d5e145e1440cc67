package valuation

import "github.com/fortuna/courtside/internal/projections"

// The five true positions.
var positions = []string{"PG", "SG", "SF", "PF", "C"}

// PositionNeeds computes how many more players each position wants,
// given the league's slot list and the players already on the roster.
//
// Requirements: an exact positional slot needs 1.0 of that position, a
// G slot splits 0.5 across PG/SG, an F slot 0.5 across SF/PF, and a
// Util slot 0.2 across all five. Bench and IL slots create no
// positional requirement. Each rostered player fills 1/len(positions)
// at every position he is listed at.
func PositionNeeds(settings LeagueSettings, roster []*projections.PlayerStat) map[string]float64 {
	required := make(map[string]float64, len(positions))

	for _, slot := range settings.Slots() {
		if isBenchOrIL(slot) {
			continue
		}
		switch slot {
		case SlotGuard:
			required["PG"] += 0.5
			required["SG"] += 0.5
		case SlotForward:
			required["SF"] += 0.5
			required["PF"] += 0.5
		case SlotUtil:
			for _, pos := range positions {
				required[pos] += 0.2
			}
		default:
			required[slot] += 1
		}
	}

	filled := make(map[string]float64, len(positions))
	for _, p := range roster {
		eligible := p.Positions()
		if len(eligible) == 0 {
			continue
		}
		share := 1 / float64(len(eligible))
		for _, pos := range eligible {
			filled[pos] += share
		}
	}

	needs := make(map[string]float64, len(required))
	for pos, req := range required {
		need := req - filled[pos]
		if need < 0 {
			need = 0
		}
		needs[pos] = need
	}
	return needs
}

// RosterSlot is one rendered roster row: a slot label and the player
// assigned to it, if any.
type RosterSlot struct {
	Slot   string                  `json:"slot"`
	Player *projections.PlayerStat `json:"player,omitempty"`
}

// AssignRosterSlots places drafted players into the league's slot list
// with a two-pass greedy match. Pass one fills starting slots in order
// with the first eligible unassigned player; pass two drops the
// remainder into bench/IL slots in order. Players beyond the available
// slots simply don't appear, which is a display limitation, not an
// error.
//
// Eligibility is intentionally literal: Util takes anyone, G takes a
// player listed exactly "PG" or "SG", F exactly "SF" or "PF", and a
// positional slot requires the full position string to match. A
// multi-position listing like "PG/SG" is only Util-eligible.
func AssignRosterSlots(settings LeagueSettings, roster []*projections.PlayerStat) []RosterSlot {
	slots := settings.Slots()
	assigned := make([]RosterSlot, len(slots))
	used := make([]bool, len(roster))

	for i, slot := range slots {
		assigned[i] = RosterSlot{Slot: slot}
		if isBenchOrIL(slot) {
			continue
		}

		for j, p := range roster {
			if used[j] || !eligibleForSlot(p.Position, slot) {
				continue
			}
			assigned[i].Player = p
			used[j] = true
			break
		}
	}

	for j, p := range roster {
		if used[j] {
			continue
		}
		for i, slot := range slots {
			if !isBenchOrIL(slot) || assigned[i].Player != nil {
				continue
			}
			assigned[i].Player = p
			used[j] = true
			break
		}
	}

	return assigned
}

// OpenSlotCount reports how many slots remain empty after assignment.
func OpenSlotCount(settings LeagueSettings, roster []*projections.PlayerStat) int {
	open := 0
	for _, rs := range AssignRosterSlots(settings, roster) {
		if rs.Player == nil {
			open++
		}
	}
	return open
}

func eligibleForSlot(position, slot string) bool {
	switch slot {
	case SlotUtil:
		return true
	case SlotGuard:
		return position == "PG" || position == "SG"
	case SlotForward:
		return position == "SF" || position == "PF"
	}
	return position == slot
}
