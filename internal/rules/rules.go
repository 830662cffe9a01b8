// Package rules implements the ordered matching rules that decide which
// sidebar section a channel belongs in.
//
// Rule order is load-bearing: resolution is always a stable sequential scan
// and the first rule whose predicate holds wins. Nothing in this package may
// reorder a rule list.
package rules

import (
	"fmt"
	"strings"
)

// Type identifies a rule variant.
type Type string

const (
	// TypePrefix matches channel names starting with the value
	TypePrefix Type = "prefix"
	// TypeSuffix matches channel names ending with the value
	TypeSuffix Type = "suffix"
	// TypeKeyword matches channel names containing the value
	TypeKeyword Type = "keyword"
	// TypeExact matches channel names equal to the value
	TypeExact Type = "exact"
)

// Spec is the untyped on-disk form of a rule. The type-specific field
// (prefix/suffix/keyword/name) is selected by the Type discriminator.
type Spec struct {
	Type            string  `json:"type" yaml:"type" toml:"type"`
	SidebarSection  string  `json:"sidebar_section,omitempty" yaml:"sidebar_section,omitempty" toml:"sidebar_section,omitempty"`
	Prefix          *string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Suffix          *string `json:"suffix,omitempty" yaml:"suffix,omitempty" toml:"suffix,omitempty"`
	Keyword         *string `json:"keyword,omitempty" yaml:"keyword,omitempty" toml:"keyword,omitempty"`
	Name            *string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	SkipIfOrganized bool    `json:"skip_if_organized,omitempty" yaml:"skip_if_organized,omitempty" toml:"skip_if_organized,omitempty"`
	Mute            bool    `json:"mute,omitempty" yaml:"mute,omitempty" toml:"mute,omitempty"`
}

// Rule is a single immutable matching rule.
//
// Value is nil when the spec omitted the type-specific field. Such a rule is
// constructed anyway and matches nothing; callers can observe the state via
// HasValue. This mirrors how a missing field behaves in rules files in the
// wild and is deliberately not validated away.
type Rule struct {
	Type            Type
	Value           *string
	SectionRef      string // raw sidebar_section value from the spec
	DestinationID   string // resolved section id; empty for mute-only rules
	SkipIfOrganized bool
	Mute            bool
}

// UnknownTypeError reports a rule spec whose type discriminator is not one of
// the four known variants.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown rule type %q", e.Type)
}

// FromSpec constructs a Rule from its untyped record.
func FromSpec(s Spec) (Rule, error) {
	r := Rule{
		SectionRef:      s.SidebarSection,
		SkipIfOrganized: s.SkipIfOrganized,
		Mute:            s.Mute,
	}

	switch Type(s.Type) {
	case TypePrefix:
		r.Type = TypePrefix
		r.Value = s.Prefix
	case TypeSuffix:
		r.Type = TypeSuffix
		r.Value = s.Suffix
	case TypeKeyword:
		r.Type = TypeKeyword
		r.Value = s.Keyword
	case TypeExact:
		r.Type = TypeExact
		r.Value = s.Name
	default:
		return Rule{}, &UnknownTypeError{Type: s.Type}
	}

	return r, nil
}

// HasValue reports whether the rule carries a matching value. A rule without
// one is degenerate and never applies.
func (r Rule) HasValue() bool {
	return r.Value != nil
}

// Applies reports whether the rule matches the given channel name.
// Matching is exact and case-sensitive; an empty keyword matches every name.
func (r Rule) Applies(name string) bool {
	if r.Value == nil {
		return false
	}

	switch r.Type {
	case TypePrefix:
		return strings.HasPrefix(name, *r.Value)
	case TypeSuffix:
		return strings.HasSuffix(name, *r.Value)
	case TypeKeyword:
		return strings.Contains(name, *r.Value)
	case TypeExact:
		return name == *r.Value
	default:
		return false
	}
}

// String returns a human-readable form of the rule for plan output.
func (r Rule) String() string {
	value := "<unset>"
	if r.Value != nil {
		value = fmt.Sprintf("%q", *r.Value)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Type, value)
	if r.SectionRef != "" {
		fmt.Fprintf(&b, " -> %s", r.SectionRef)
	}
	if r.Mute {
		b.WriteString(" [mute]")
	}
	if r.SkipIfOrganized {
		b.WriteString(" [skip-if-organized]")
	}
	return b.String()
}

// FirstMatch returns the first rule in order whose predicate holds for name.
func FirstMatch(rs []Rule, name string) (Rule, bool) {
	for _, r := range rs {
		if r.Applies(name) {
			return r, true
		}
	}
	return Rule{}, false
}
