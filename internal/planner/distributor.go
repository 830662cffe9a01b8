package planner

import (
	"chorg/internal/sections"
)

// Distribute spreads planned moves across each destination section and its
// overflow siblings so that no section is assigned more moves than it has
// room for.
//
// For every move, candidate sections are tried in order: the rule's section
// first, then its overflow siblings ascending by numeric suffix. The first
// candidate with remaining capacity takes the move; capacity counters are
// local to this pass and seeded from the snapshot, never written back. When
// every candidate is full the move keeps its original destination and is
// expected to fail at execution time rather than being dropped silently.
func Distribute(moves []Move, all []sections.Section) []Move {
	byID := sections.ByID(all)

	remaining := make(map[string]int)
	capacityOf := func(s sections.Section) int {
		if r, ok := remaining[s.ID]; ok {
			return r
		}
		remaining[s.ID] = s.Available()
		return remaining[s.ID]
	}

	// Candidate lists are computed once per destination.
	candidates := make(map[string][]sections.Section)

	out := make([]Move, len(moves))
	copy(out, moves)

	for i := range out {
		destID := out[i].ToSectionID
		cands, ok := candidates[destID]
		if !ok {
			if primary, found := byID[destID]; found {
				cands = append([]sections.Section{primary}, sections.FindOverflow(primary.Name, all)...)
			}
			candidates[destID] = cands
		}

		for _, cand := range cands {
			if capacityOf(cand) > 0 {
				remaining[cand.ID]--
				out[i].ToSectionID = cand.ID
				break
			}
		}
	}

	return out
}
