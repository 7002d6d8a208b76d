package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexandergillon/metromap/pkg/errors"
)

// fakeProvider resolves every station name to a synthetic identifier, and
// fails for names listed in missing.
type fakeProvider struct {
	missing map[string]bool
}

func (p *fakeProvider) Resolve(lineName, stationName string) (string, error) {
	if p.missing[stationName] {
		return "", errors.New(errors.ErrCodeNoIdentifier, "No NAPTAN entry for %s on line %s.", stationName, lineName)
	}
	id := strings.ReplaceAll(strings.ToUpper(stationName), " ", "")
	return fmt.Sprintf("940GZZ%s", id), nil
}

func parse(t *testing.T, input string) (*Parser, error) {
	t.Helper()
	p := New(&fakeProvider{}, 2)
	_, _, err := p.Parse(strings.NewReader(input))
	return p, err
}

func TestParse_BuildsNetwork(t *testing.T) {
	input := `
line victoria
station "Brixton" 3 18
station "Stockwell" 3 16
station "Vauxhall" 2 15
edges "Brixton, Stockwell, Vauxhall"
curve "Stockwell, Vauxhall" down,left
`
	p := New(&fakeProvider{}, 2)
	net, constraints, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(constraints) != 0 {
		t.Errorf("got %d constraints, want 0", len(constraints))
	}

	line, ok := net.Line("victoria")
	if !ok {
		t.Fatal("line victoria not found")
	}
	if got := len(line.Stations()); got != 3 {
		t.Errorf("got %d stations, want 3", got)
	}
	if got := len(line.Edges()); got != 2 {
		t.Errorf("got %d edges, want 2", got)
	}
	if got := len(line.Curves()); got != 1 {
		t.Errorf("got %d curves, want 1", got)
	}

	s, ok := line.Station("Brixton")
	if !ok {
		t.Fatal("station Brixton not found")
	}
	if want := "vi_940GZZBRIXTON"; s.ID != want {
		t.Errorf("station ID = %q, want %q", s.ID, want)
	}
	if s.OriginalX != 3 || s.OriginalY != 18 {
		t.Errorf("station coords = (%d, %d), want (3, 18)", s.OriginalX, s.OriginalY)
	}
}

func TestParse_DefersConstraints(t *testing.T) {
	input := `
line victoria
vertical "Brixton, Stockwell"
station "Brixton" 3 18
station "Stockwell" 3 16
edges "Brixton, Stockwell"
`
	p := New(&fakeProvider{}, 2)
	_, constraints, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(constraints) != 1 {
		t.Fatalf("got %d constraints, want 1", len(constraints))
	}

	c := constraints[0]
	if c.Kind != ConstraintCardinal {
		t.Errorf("Kind = %v, want ConstraintCardinal", c.Kind)
	}
	if c.Cardinal != CardinalVertical {
		t.Errorf("Cardinal = %q, want %q", c.Cardinal, CardinalVertical)
	}
	if c.LineNumber != 3 {
		t.Errorf("LineNumber = %d, want 3", c.LineNumber)
	}
	if line, ok := c.Context.Line(); !ok || line.Name() != "victoria" {
		t.Errorf("Context line = %v, %v, want victoria", line, ok)
	}

	names, err := c.StationChain()
	if err != nil {
		t.Fatalf("StationChain() error = %v", err)
	}
	if len(names) != 2 || names[0] != "Brixton" || names[1] != "Stockwell" {
		t.Errorf("StationChain() = %v, want [Brixton Stockwell]", names)
	}
}

func TestParse_NormalizesDirectionKeywords(t *testing.T) {
	tests := []struct {
		keyword string
		want    Cardinal
	}{
		{"vertical", CardinalVertical},
		{"horizontal", CardinalHorizontal},
		{"up-right", CardinalUpRight},
		{"down-right", CardinalDownRight},
		{"up-left", CardinalDownRight},
		{"down-left", CardinalUpRight},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			input := fmt.Sprintf("line victoria\n%s \"A, B\"\n", tt.keyword)
			p := New(&fakeProvider{}, 2)
			_, constraints, err := p.Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(constraints) != 1 {
				t.Fatalf("got %d constraints, want 1", len(constraints))
			}
			if got := constraints[0].Cardinal; got != tt.want {
				t.Errorf("Cardinal = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_MultiLineContext(t *testing.T) {
	input := `
line victoria
multi-line
vertical "Brixton, Oval"
`
	p := New(&fakeProvider{}, 2)
	_, constraints, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(constraints) != 1 {
		t.Fatalf("got %d constraints, want 1", len(constraints))
	}
	c := constraints[0]
	if !c.Context.IsMulti() {
		t.Errorf("Context.IsMulti() = false, want true")
	}
	if _, ok := c.Context.Line(); ok {
		t.Errorf("Context.Line() ok = true, want false under multi-line")
	}
}

func TestParse_SameStationAndEqualRecorded(t *testing.T) {
	input := `
line victoria
same-station "A" "B"
equal "A" x "B" x
`
	p := New(&fakeProvider{}, 2)
	_, constraints, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(constraints) != 2 {
		t.Fatalf("got %d constraints, want 2", len(constraints))
	}
	if constraints[0].Kind != ConstraintSameStation {
		t.Errorf("constraint 0 Kind = %v, want ConstraintSameStation", constraints[0].Kind)
	}
	if constraints[1].Kind != ConstraintEqual {
		t.Errorf("constraint 1 Kind = %v, want ConstraintEqual", constraints[1].Kind)
	}
}

func TestParse_LineStatementTrailingColon(t *testing.T) {
	p, err := parse(t, "line northern:\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := p.network.Line("northern"); !ok {
		t.Error("line northern not found; trailing colon should be cosmetic")
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
		wantLine int
	}{
		{
			name:     "duplicate line",
			input:    "line victoria\nline victoria\n",
			wantCode: errors.ErrCodeDuplicate,
			wantLine: 2,
		},
		{
			name:     "duplicate station",
			input:    "line victoria\nstation \"Oval\" 1 1\nstation \"Oval\" 2 2\n",
			wantCode: errors.ErrCodeDuplicate,
			wantLine: 3,
		},
		{
			name:     "station before line",
			input:    "station \"Oval\" 1 1\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 1,
		},
		{
			name:     "station after multi-line",
			input:    "line victoria\nmulti-line\nstation \"Oval\" 1 1\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 3,
		},
		{
			name:     "station missing coordinate",
			input:    "line victoria\nstation \"Oval\" 1\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 2,
		},
		{
			name:     "station non-integer coordinate",
			input:    "line victoria\nstation \"Oval\" 1 x\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 2,
		},
		{
			name:     "station unquoted name",
			input:    "line victoria\nstation Oval 1 1\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 2,
		},
		{
			name:     "edges unknown station",
			input:    "line victoria\nstation \"Oval\" 1 1\nedges \"Oval, Nowhere\"\n",
			wantCode: errors.ErrCodeUnknownStation,
			wantLine: 3,
		},
		{
			name:     "edges single station",
			input:    "line victoria\nstation \"Oval\" 1 1\nedges \"Oval\"\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 3,
		},
		{
			name:     "curve without edge",
			input:    "line victoria\nstation \"A\" 1 1\nstation \"B\" 2 2\ncurve \"A, B\" down,left\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 4,
		},
		{
			name:     "curve bad kind",
			input:    "line victoria\nstation \"A\" 1 1\nstation \"B\" 2 2\nedges \"A, B\"\ncurve \"A, B\" sideways\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 5,
		},
		{
			name:     "line name with whitespace",
			input:    "line waterloo city\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 1,
		},
		{
			name:     "line without name",
			input:    "line\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 1,
		},
		{
			name:     "unrecognized statement",
			input:    "line victoria\nteleport \"Oval\"\n",
			wantCode: errors.ErrCodeStructural,
			wantLine: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			if err == nil {
				t.Fatal("Parse() error = nil, want failure")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			wantTag := fmt.Sprintf("(line %d)", tt.wantLine)
			if msg := errors.UserMessage(err); !strings.Contains(msg, wantTag) {
				t.Errorf("diagnostic %q does not reference %q", msg, wantTag)
			}
		})
	}
}

func TestParse_MissingIdentifier(t *testing.T) {
	p := New(&fakeProvider{missing: map[string]bool{"Atlantis": true}}, 2)
	input := "line victoria\nstation \"Atlantis\" 1 1\n"
	_, _, err := p.Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("Parse() error = nil, want failure")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeNoIdentifier {
		t.Errorf("error code = %q, want %q", got, errors.ErrCodeNoIdentifier)
	}
}

func TestParse_DuplicateEdgeIsNoOp(t *testing.T) {
	input := `
line victoria
station "A" 1 1
station "B" 2 2
edges "A, B"
edges "B, A"
`
	p := New(&fakeProvider{}, 2)
	net, _, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	line, _ := net.Line("victoria")
	if got := len(line.Edges()); got != 1 {
		t.Errorf("got %d edges, want 1 (reversed redeclaration must dedupe)", got)
	}
}

func TestParse_SameStationNameOnTwoLines(t *testing.T) {
	input := `
line victoria
station "Oxford Circus" 1 1
line central
station "Oxford Circus" 1 1
`
	p := New(&fakeProvider{}, 2)
	net, _, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v, same name on two lines must be legal", err)
	}
	v, _ := net.Line("victoria")
	c, _ := net.Line("central")
	sv, _ := v.Station("Oxford Circus")
	sc, _ := c.Station("Oxford Circus")
	if sv.ID == sc.ID {
		t.Errorf("IDs %q and %q collide across lines", sv.ID, sc.ID)
	}
}

func TestParse_FullLinePrefix(t *testing.T) {
	p := New(&fakeProvider{}, -1)
	input := "line hammersmith-city\nstation \"Barking\" 1 1\n"
	net, _, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	line, _ := net.Line("hammersmith-city")
	s, _ := line.Station("Barking")
	if want := "hammersmithcity_940GZZBARKING"; s.ID != want {
		t.Errorf("station ID = %q, want %q", s.ID, want)
	}
}
