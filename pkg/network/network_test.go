package network

import (
	"strings"
	"testing"

	"github.com/alexandergillon/metromap/pkg/errors"
)

func TestAddLine_Duplicate(t *testing.T) {
	n := New(2)
	if _, err := n.AddLine("victoria", 1); err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	_, err := n.AddLine("victoria", 5)
	if err == nil {
		t.Fatal("AddLine() redeclaration: want error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeDuplicate {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeDuplicate)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "(line 5)") {
		t.Errorf("diagnostic %q does not reference line 5", msg)
	}
}

func TestLines_DeclarationOrder(t *testing.T) {
	n := New(2)
	for i, name := range []string{"victoria", "central", "bakerloo"} {
		if _, err := n.AddLine(name, i+1); err != nil {
			t.Fatalf("AddLine(%s) error = %v", name, err)
		}
	}
	var got []string
	for _, l := range n.Lines() {
		got = append(got, l.Name())
	}
	want := []string{"victoria", "central", "bakerloo"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidate_UniquePrefixes(t *testing.T) {
	n := New(2)
	n.AddLine("central", 1)
	n.AddLine("circle", 2)

	if err := n.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil for distinct prefixes", err)
	}

	n2 := New(2)
	n2.AddLine("victoria", 1)
	n2.AddLine("vintage", 2)
	err := n2.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want prefix collision error")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvariant {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeInvariant)
	}
}

func TestValidate_FullPrefixNeverCollides(t *testing.T) {
	n := New(FullLinePrefix)
	n.AddLine("victoria", 1)
	n.AddLine("vintage", 2)
	if err := n.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil with whole-name prefixes", err)
	}
}

func TestValidate_OrphanStation(t *testing.T) {
	n := New(2)
	l, _ := n.AddLine("victoria", 1)
	l.AddStation(NewStation("victoria", "A", "IDA", 1, 1, 2), 2)
	l.AddStation(NewStation("victoria", "B", "IDB", 2, 2, 2), 3)
	l.AddStation(NewStation("victoria", "C", "IDC", 3, 3, 2), 4)
	l.AddEdge("A", "B", 5)

	err := n.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want orphan station error")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvariant {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeInvariant)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "C") {
		t.Errorf("diagnostic %q does not name the orphan station", msg)
	}
}

func TestStationIDs_Order(t *testing.T) {
	n := New(2)
	v, _ := n.AddLine("victoria", 1)
	v.AddStation(NewStation("victoria", "A", "IDA", 1, 1, 2), 2)
	v.AddStation(NewStation("victoria", "B", "IDB", 2, 2, 2), 3)
	c, _ := n.AddLine("central", 4)
	c.AddStation(NewStation("central", "C", "IDC", 3, 3, 2), 5)

	got := n.StationIDs()
	want := []string{"vi_IDA", "vi_IDB", "ce_IDC"}
	if len(got) != len(want) {
		t.Fatalf("got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLine_AddStation_Duplicate(t *testing.T) {
	l := NewLine("victoria")
	l.AddStation(NewStation("victoria", "Oval", "ID1", 1, 1, 2), 1)
	err := l.AddStation(NewStation("victoria", "Oval", "ID2", 2, 2, 2), 2)
	if err == nil {
		t.Fatal("AddStation() redeclaration: want error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeDuplicate {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeDuplicate)
	}
}

func TestLine_AddEdge(t *testing.T) {
	l := NewLine("victoria")
	l.AddStation(NewStation("victoria", "A", "IDA", 1, 1, 2), 1)
	l.AddStation(NewStation("victoria", "B", "IDB", 2, 2, 2), 2)

	if err := l.AddEdge("A", "B", 3); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if !l.HasEdge("A", "B") || !l.HasEdge("B", "A") {
		t.Error("HasEdge() must hold in both orientations")
	}

	if err := l.AddEdge("B", "A", 4); err != nil {
		t.Fatalf("AddEdge() reversed redeclaration error = %v, want nil", err)
	}
	if got := len(l.Edges()); got != 1 {
		t.Errorf("got %d edges, want 1", got)
	}

	err := l.AddEdge("A", "Nowhere", 5)
	if err == nil {
		t.Fatal("AddEdge() to unknown station: want error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeUnknownStation {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeUnknownStation)
	}
}

func TestLine_AddCurve_RequiresEdge(t *testing.T) {
	l := NewLine("victoria")
	l.AddStation(NewStation("victoria", "A", "IDA", 1, 1, 2), 1)
	l.AddStation(NewStation("victoria", "B", "IDB", 2, 2, 2), 2)

	err := l.AddCurve("A", "B", "down,left", 3)
	if err == nil {
		t.Fatal("AddCurve() without edge: want error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeStructural {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeStructural)
	}

	l.AddEdge("A", "B", 4)
	if err := l.AddCurve("B", "A", "down,left", 5); err != nil {
		t.Errorf("AddCurve() on reversed edge error = %v, want nil", err)
	}
}

func TestNewStation_IDDerivation(t *testing.T) {
	tests := []struct {
		name      string
		lineName  string
		prefixLen int
		wantID    string
	}{
		{"two char prefix", "victoria", 2, "vi_940GZZLUVIC"},
		{"whole name", "victoria", FullLinePrefix, "victoria_940GZZLUVIC"},
		{"prefix longer than name", "dlr", 5, "dlr_940GZZLUVIC"},
		{"hyphen removed", "waterloo-city", FullLinePrefix, "waterloocity_940GZZLUVIC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStation(tt.lineName, "X", "940GZZLUVIC", 0, 0, tt.prefixLen)
			if s.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", s.ID, tt.wantID)
			}
		})
	}
}

func TestNewStation_SolvedCoordsStartUnsolved(t *testing.T) {
	s := NewStation("victoria", "X", "ID", 4, 7, 2)
	if s.SolvedX != UnsolvedCoord || s.SolvedY != UnsolvedCoord {
		t.Errorf("solved coords = (%d, %d), want (%d, %d)", s.SolvedX, s.SolvedY, UnsolvedCoord, UnsolvedCoord)
	}
}
