// Package miner derives frequency-ranked prefix and suffix candidates from
// channel names. It exists to bootstrap a rules file when none is supplied;
// its output is advisory and never produces moves.
package miner

import (
	"sort"
	"strings"

	"chorg/internal/rules"
	"chorg/internal/sections"
)

// Separator splits channel names into segments.
const Separator = "-"

const (
	// minCount is the occurrence threshold for a suggested pattern
	minCount = 5
	// maxPatternLen bounds suggested pattern length (exclusive)
	maxPatternLen = 20
	// topPerSection caps suggestions per section per pattern kind
	topPerSection = 3
)

// Prefixes counts candidate prefixes across names.
//
// Each name is split on the separator, the trailing segment is dropped (it is
// the distinguishing part, not shared structure), at most the first four
// segments are kept, and every leading run of those segments counts once.
// A name without a separator contributes nothing. Empty segments from
// consecutive separators participate as-is, so "test--x" yields "test-".
func Prefixes(names []string) map[string]int {
	counts := make(map[string]int)
	for _, name := range names {
		segs := strings.Split(name, Separator)
		if len(segs) < 2 {
			continue
		}
		segs = segs[:len(segs)-1]
		if len(segs) > 4 {
			segs = segs[:4]
		}
		for k := 1; k <= len(segs); k++ {
			counts[strings.Join(segs[:k], Separator)]++
		}
	}
	return counts
}

// Suffixes counts candidate suffixes across names. Suffix mining is prefix
// mining on the mirror image of each name: segments reversed, counted, and
// the resulting keys reversed back.
func Suffixes(names []string) map[string]int {
	mirrored := make([]string, len(names))
	for i, name := range names {
		mirrored[i] = mirror(name)
	}

	counts := Prefixes(mirrored)
	out := make(map[string]int, len(counts))
	for key, n := range counts {
		out[mirror(key)] = n
	}
	return out
}

// mirror reverses the separator-delimited segment order of a name.
func mirror(name string) string {
	segs := strings.Split(name, Separator)
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, Separator)
}

// BestPrefix returns the longest candidate that is a true prefix of name.
// Ties keep the first-encountered candidate. The second return is false when
// no candidate qualifies.
func BestPrefix(name string, candidates []string) (string, bool) {
	var best string
	found := false
	for _, c := range candidates {
		if strings.HasPrefix(name, c) && (!found || len(c) > len(best)) {
			best = c
			found = true
		}
	}
	return best, found
}

// Suggestion is one proposed starter rule for human review.
type Suggestion struct {
	Kind        rules.Type `json:"kind"`
	Pattern     string     `json:"pattern"`
	SectionID   string     `json:"sectionId"`
	SectionName string     `json:"sectionName"`
	Count       int        `json:"count"`
}

// Spec converts the suggestion into a rules-file record.
func (s Suggestion) Spec() rules.Spec {
	pattern := s.Pattern
	spec := rules.Spec{
		Type:           string(s.Kind),
		SidebarSection: s.SectionName,
	}
	switch s.Kind {
	case rules.TypeSuffix:
		spec.Suffix = &pattern
	default:
		spec.Prefix = &pattern
	}
	return spec
}

// Suggest mines the names of each section's current members for recurring
// prefixes and suffixes and proposes starter rules.
//
// Per section and kind, candidates need at least minCount occurrences and
// fewer than maxPatternLen characters; the top topPerSection by count are
// kept. When the same pattern is proposed for multiple sections only the
// highest-count proposal survives. The result is sorted by (section name,
// pattern) for stable human-readable output.
func Suggest(secs []sections.Section, channelNames map[string]string) []Suggestion {
	var proposed []Suggestion

	for _, sec := range secs {
		var names []string
		for _, cid := range sec.ChannelIDs {
			if name, ok := channelNames[cid]; ok {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}

		for _, kind := range []rules.Type{rules.TypePrefix, rules.TypeSuffix} {
			var counts map[string]int
			if kind == rules.TypePrefix {
				counts = Prefixes(names)
			} else {
				counts = Suffixes(names)
			}
			proposed = append(proposed, rank(kind, counts, sec)...)
		}
	}

	// Keep only the strongest proposal for a pattern claimed by several
	// sections.
	type key struct {
		kind    rules.Type
		pattern string
	}
	best := make(map[key]Suggestion)
	for _, s := range proposed {
		k := key{kind: s.Kind, pattern: s.Pattern}
		if cur, ok := best[k]; !ok || s.Count > cur.Count {
			best[k] = s
		}
	}

	result := make([]Suggestion, 0, len(best))
	for _, s := range best {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SectionName != result[j].SectionName {
			return result[i].SectionName < result[j].SectionName
		}
		return result[i].Pattern < result[j].Pattern
	})
	return result
}

// rank filters and orders one section's candidates for a pattern kind.
func rank(kind rules.Type, counts map[string]int, sec sections.Section) []Suggestion {
	var kept []Suggestion
	for pattern, n := range counts {
		if n < minCount || len(pattern) >= maxPatternLen {
			continue
		}
		kept = append(kept, Suggestion{
			Kind:        kind,
			Pattern:     pattern,
			SectionID:   sec.ID,
			SectionName: sec.Name,
			Count:       n,
		})
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Count != kept[j].Count {
			return kept[i].Count > kept[j].Count
		}
		return kept[i].Pattern < kept[j].Pattern
	})

	if len(kept) > topPerSection {
		kept = kept[:topPerSection]
	}
	return kept
}
