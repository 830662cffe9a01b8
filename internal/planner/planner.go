// Package planner turns a workspace snapshot and a rule list into the
// minimal set of moves that brings every matched channel into its section.
package planner

import (
	"chorg/internal/rules"
	"chorg/internal/sections"
)

// Channel is one workspace channel as seen in the snapshot.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Move is a planned relocation of one channel. The planner creates moves,
// the distributor may rewrite ToSectionID to an overflow section, and the
// executor only reads them.
type Move struct {
	ChannelID     string `json:"channelId"`
	ChannelName   string `json:"channelName"`
	FromSectionID string `json:"fromSectionId,omitempty"`
	ToSectionID   string `json:"toSectionId"`
	Mute          bool   `json:"mute,omitempty"`
}

// Plan is the outcome of one planning pass over a snapshot.
type Plan struct {
	Moves []Move `json:"moves"`
	// MuteChannelIDs lists channels whose first-matching rule mutes them.
	// Muting is orthogonal to relocation: mute-only rules land here without
	// producing a move, and so do channels already in place.
	MuteChannelIDs []string `json:"muteChannelIds,omitempty"`
}

// Build runs first-match resolution for every channel and emits moves for
// those that need relocating.
//
// A channel with no matching rule is skipped silently. A matched rule with
// no destination records only a mute intent. A channel already inside its
// destination produces no move, and a skip-if-organized rule produces no
// move for any channel that currently sits in a known section.
func Build(channels []Channel, ruleSet []rules.Rule, secs []sections.Section) Plan {
	holder := make(map[string]string)
	for _, s := range secs {
		for _, cid := range s.ChannelIDs {
			if _, ok := holder[cid]; !ok {
				holder[cid] = s.ID
			}
		}
	}
	byID := sections.ByID(secs)

	var plan Plan
	muted := make(map[string]bool)

	for _, ch := range channels {
		rule, ok := rules.FirstMatch(ruleSet, ch.Name)
		if !ok {
			continue
		}

		if rule.Mute && !muted[ch.ID] {
			muted[ch.ID] = true
			plan.MuteChannelIDs = append(plan.MuteChannelIDs, ch.ID)
		}

		if rule.DestinationID == "" {
			continue
		}

		if dest, ok := byID[rule.DestinationID]; ok && dest.Contains(ch.ID) {
			continue
		}

		from := holder[ch.ID]
		if rule.SkipIfOrganized && from != "" {
			continue
		}

		plan.Moves = append(plan.Moves, Move{
			ChannelID:     ch.ID,
			ChannelName:   ch.Name,
			FromSectionID: from,
			ToSectionID:   rule.DestinationID,
			Mute:          rule.Mute,
		})
	}

	return plan
}
