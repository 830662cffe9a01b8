package miner

import (
	"reflect"
	"testing"

	"chorg/internal/rules"
	"chorg/internal/sections"
)

func TestPrefixes(t *testing.T) {
	names := []string{
		"project-alpha",
		"project-beta",
		"customer-a",
		"customer-b",
		"customer-c",
		"some-other-channel",
	}

	got := Prefixes(names)
	want := map[string]int{
		"customer":   3,
		"project":    2,
		"some":       1,
		"some-other": 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}

func TestPrefixes_NoSeparator(t *testing.T) {
	got := Prefixes([]string{"general", "random"})
	if len(got) != 0 {
		t.Errorf("Prefixes() = %v, want empty", got)
	}
}

func TestPrefixes_EmptySegments(t *testing.T) {
	// Consecutive separators produce empty segments that participate as-is.
	got := Prefixes([]string{"test--x"})
	want := map[string]int{
		"test":  1,
		"test-": 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}

func TestPrefixes_SegmentCap(t *testing.T) {
	// Only the first four segments of the shared structure count.
	got := Prefixes([]string{"a-b-c-d-e-f-tail"})
	want := map[string]int{
		"a":       1,
		"a-b":     1,
		"a-b-c":   1,
		"a-b-c-d": 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}

func TestSuffixes(t *testing.T) {
	names := []string{
		"alpha-alerts",
		"beta-alerts",
		"ops-prod-alerts",
	}

	got := Suffixes(names)
	want := map[string]int{
		"alerts":      3,
		"prod-alerts": 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suffixes() = %v, want %v", got, want)
	}
}

func TestBestPrefix(t *testing.T) {
	got, ok := BestPrefix("cust-vip-linear", []string{"project", "cust", "cust-vip"})
	if !ok {
		t.Fatal("BestPrefix() found no candidate")
	}
	if got != "cust-vip" {
		t.Errorf("BestPrefix() = %q, want %q", got, "cust-vip")
	}
}

func TestBestPrefix_NoCandidate(t *testing.T) {
	if _, ok := BestPrefix("general", []string{"cust", "proj"}); ok {
		t.Error("BestPrefix() matched, want none")
	}
	if _, ok := BestPrefix("general", nil); ok {
		t.Error("BestPrefix() matched on empty candidates")
	}
}

func suggestFixture() ([]sections.Section, map[string]string) {
	names := map[string]string{}
	var engIDs, opsIDs []string

	// Engineering: six channels under a three-segment shared structure and
	// five under a single shared segment.
	for i, suffix := range []string{"one", "two", "three", "four", "five", "six"} {
		id := "CE" + string(rune('0'+i))
		names[id] = "eng-platform-api-" + suffix
		engIDs = append(engIDs, id)
	}
	for i, suffix := range []string{"one", "two", "three", "four", "five"} {
		id := "CZ" + string(rune('0'+i))
		names[id] = "zz-" + suffix
		engIDs = append(engIDs, id)
	}

	// Ops: the same zz prefix but with fewer members than Engineering has.
	for i, suffix := range []string{"a", "b", "c", "d"} {
		id := "CO" + string(rune('0'+i))
		names[id] = "zz-" + suffix
		opsIDs = append(opsIDs, id)
	}

	return []sections.Section{
		sections.New("S1", "Engineering", engIDs),
		sections.New("S2", "Ops", opsIDs),
	}, names
}

func TestSuggest(t *testing.T) {
	secs, names := suggestFixture()

	got := Suggest(secs, names)

	// Engineering has four qualifying prefix candidates (eng, eng-platform,
	// eng-platform-api at 6 and zz at 5); only the top three survive, so zz
	// is cut before the cross-section dedupe even starts. Ops' zz sits at 4
	// occurrences, below threshold.
	want := []Suggestion{
		{Kind: rules.TypePrefix, Pattern: "eng", SectionID: "S1", SectionName: "Engineering", Count: 6},
		{Kind: rules.TypePrefix, Pattern: "eng-platform", SectionID: "S1", SectionName: "Engineering", Count: 6},
		{Kind: rules.TypePrefix, Pattern: "eng-platform-api", SectionID: "S1", SectionName: "Engineering", Count: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %+v, want %+v", got, want)
	}
}

func TestSuggest_DedupeKeepsHighestCount(t *testing.T) {
	names := map[string]string{}
	var aIDs, bIDs []string
	for i := 0; i < 6; i++ {
		id := "CA" + string(rune('0'+i))
		names[id] = "shared-" + string(rune('a'+i))
		aIDs = append(aIDs, id)
	}
	for i := 0; i < 5; i++ {
		id := "CB" + string(rune('0'+i))
		names[id] = "shared-" + string(rune('p'+i))
		bIDs = append(bIDs, id)
	}

	secs := []sections.Section{
		sections.New("S1", "Alpha", aIDs),
		sections.New("S2", "Beta", bIDs),
	}

	got := Suggest(secs, names)
	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1: %+v", len(got), got)
	}
	if got[0].SectionID != "S1" || got[0].Count != 6 {
		t.Errorf("winner = %+v, want shared@Alpha with count 6", got[0])
	}
}

func TestSuggest_LongPatternsExcluded(t *testing.T) {
	names := map[string]string{}
	var ids []string
	for i := 0; i < 5; i++ {
		id := "CL" + string(rune('0'+i))
		names[id] = "abcdefghijklmnopqrstuv-" + string(rune('a'+i))
		ids = append(ids, id)
	}

	got := Suggest([]sections.Section{sections.New("S1", "Long", ids)}, names)
	if len(got) != 0 {
		t.Errorf("Suggest() = %+v, want none for over-length patterns", got)
	}
}

func TestSuggestionSpec(t *testing.T) {
	p := Suggestion{Kind: rules.TypePrefix, Pattern: "cust", SectionName: "Customers"}
	spec := p.Spec()
	if spec.Type != "prefix" || spec.Prefix == nil || *spec.Prefix != "cust" || spec.SidebarSection != "Customers" {
		t.Errorf("prefix Spec() = %+v", spec)
	}

	s := Suggestion{Kind: rules.TypeSuffix, Pattern: "alerts", SectionName: "Alerts"}
	spec = s.Spec()
	if spec.Type != "suffix" || spec.Suffix == nil || *spec.Suffix != "alerts" {
		t.Errorf("suffix Spec() = %+v", spec)
	}
}
