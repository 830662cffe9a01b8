// Package sections models sidebar sections as read-only, capacity-limited
// snapshots of the workspace state.
package sections

import (
	"regexp"
	"sort"
	"strconv"
)

// Capacity is the fixed membership limit the service enforces per section.
const Capacity = 500

// Section is a snapshot of one sidebar section at load time. It is never
// mutated during a run; planning reasons about capacity with local counters.
type Section struct {
	ID         string
	Name       string
	ChannelIDs []string

	members map[string]struct{}
}

// New creates a section snapshot with an O(1) membership index.
func New(id, name string, channelIDs []string) Section {
	members := make(map[string]struct{}, len(channelIDs))
	for _, cid := range channelIDs {
		members[cid] = struct{}{}
	}
	return Section{
		ID:         id,
		Name:       name,
		ChannelIDs: channelIDs,
		members:    members,
	}
}

// Available returns the remaining membership capacity, never negative.
func (s Section) Available() int {
	if len(s.ChannelIDs) >= Capacity {
		return 0
	}
	return Capacity - len(s.ChannelIDs)
}

// Contains reports whether the section held the channel at snapshot time.
func (s Section) Contains(channelID string) bool {
	_, ok := s.members[channelID]
	return ok
}

// FindOverflow returns the overflow siblings of baseName: sections named
// exactly "<baseName> (<n>)" with a decimal n, ordered ascending by n.
// A section named baseName itself is the primary and is not included;
// malformed parenthetical suffixes are ignored.
func FindOverflow(baseName string, all []Section) []Section {
	re := regexp.MustCompile("^" + regexp.QuoteMeta(baseName) + ` \(([0-9]+)\)$`)

	type numbered struct {
		n int
		s Section
	}
	var matched []numbered
	for _, s := range all {
		m := re.FindStringSubmatch(s.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		matched = append(matched, numbered{n: n, s: s})
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].n < matched[j].n })

	result := make([]Section, 0, len(matched))
	for _, m := range matched {
		result = append(result, m.s)
	}
	return result
}

// ByID builds an id -> section lookup.
func ByID(all []Section) map[string]Section {
	byID := make(map[string]Section, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}
	return byID
}
