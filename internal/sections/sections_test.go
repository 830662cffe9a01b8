package sections

import (
	"fmt"
	"testing"
)

func TestAvailable(t *testing.T) {
	empty := New("S1", "Empty", nil)
	if got := empty.Available(); got != Capacity {
		t.Errorf("Available() = %d, want %d", got, Capacity)
	}

	ids := make([]string, 3)
	for i := range ids {
		ids[i] = fmt.Sprintf("C%d", i)
	}
	partial := New("S2", "Partial", ids)
	if got := partial.Available(); got != Capacity-3 {
		t.Errorf("Available() = %d, want %d", got, Capacity-3)
	}

	ids = make([]string, Capacity+10)
	for i := range ids {
		ids[i] = fmt.Sprintf("C%d", i)
	}
	over := New("S3", "Over", ids)
	if got := over.Available(); got != 0 {
		t.Errorf("Available() = %d, want 0 (never negative)", got)
	}
}

func TestContains(t *testing.T) {
	s := New("S1", "Customers", []string{"C1", "C2"})

	if !s.Contains("C1") {
		t.Error("Contains(C1) = false, want true")
	}
	if s.Contains("C9") {
		t.Error("Contains(C9) = true, want false")
	}
	if New("S2", "Empty", nil).Contains("C1") {
		t.Error("empty section should contain nothing")
	}
}

func TestFindOverflow(t *testing.T) {
	all := []Section{
		New("S1", "Alerts", nil),
		New("S2", "Alerts (5)", nil),
		New("S3", "Alerts (2)", nil),
		New("S4", "Alerts (10)", nil),
		New("S5", "Alerts (abc)", nil),
		New("S6", "Alertsx (1)", nil),
		New("S7", "Other", nil),
	}

	got := FindOverflow("Alerts", all)
	wantIDs := []string{"S3", "S2", "S4"} // numeric order 2, 5, 10
	if len(got) != len(wantIDs) {
		t.Fatalf("len(overflow) = %d, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("overflow[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestFindOverflow_EscapesBaseName(t *testing.T) {
	all := []Section{
		New("S1", "C++ (1)", nil),
		New("S2", "Cxx (1)", nil),
	}

	got := FindOverflow("C++", all)
	if len(got) != 1 || got[0].ID != "S1" {
		t.Errorf("FindOverflow(C++) = %v, want only S1", got)
	}
}

func TestFindOverflow_None(t *testing.T) {
	all := []Section{New("S1", "Alerts", nil)}
	if got := FindOverflow("Alerts", all); len(got) != 0 {
		t.Errorf("FindOverflow() = %v, want empty", got)
	}
}

func TestByID(t *testing.T) {
	all := []Section{
		New("S1", "A", nil),
		New("S2", "B", nil),
	}

	byID := ByID(all)
	if len(byID) != 2 {
		t.Fatalf("len(byID) = %d, want 2", len(byID))
	}
	if byID["S2"].Name != "B" {
		t.Errorf("byID[S2].Name = %q, want B", byID["S2"].Name)
	}
}
