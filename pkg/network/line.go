package network

import (
	"fmt"

	"github.com/alexandergillon/metromap/pkg/errors"
)

// Edge is an undirected adjacency between two stations on the same line.
// Edges compare as equal regardless of endpoint order.
type Edge struct {
	From *Station
	To   *Station
}

// ContainsStation reports whether the edge has the station as an endpoint.
func (e Edge) ContainsStation(s *Station) bool {
	return e.From == s || e.To == s
}

// Curve records the drawn shape of an edge between two stations.
// The kind is either "special" or a comma-separated pair of direction tokens;
// its form is validated by the parser before the curve reaches the model.
type Curve struct {
	From *Station
	To   *Station
	Kind string
}

// Line is a named metro line: an insertion-ordered set of stations, the
// edges between them, and the curve annotations on those edges.
type Line struct {
	name     string
	stations map[string]*Station
	order    []*Station
	edges    []Edge
	edgeSet  map[edgeKey]struct{}
	curves   []Curve
}

// edgeKey is the canonical (order-independent) identity of an edge.
type edgeKey struct {
	a, b string
}

func newEdgeKey(name1, name2 string) edgeKey {
	if name2 < name1 {
		name1, name2 = name2, name1
	}
	return edgeKey{a: name1, b: name2}
}

// NewLine creates an empty metro line with the given name.
func NewLine(name string) *Line {
	return &Line{
		name:     name,
		stations: make(map[string]*Station),
		edgeSet:  make(map[edgeKey]struct{}),
	}
}

// Name returns the name of this metro line.
func (l *Line) Name() string { return l.name }

// Stations returns the line's stations in declaration order.
// The returned slice must not be modified.
func (l *Line) Stations() []*Station { return l.order }

// Edges returns the line's edges in declaration order.
// The returned slice must not be modified.
func (l *Line) Edges() []Edge { return l.edges }

// Curves returns the line's curve annotations in declaration order.
// The returned slice must not be modified.
func (l *Line) Curves() []Curve { return l.curves }

// Station looks up a station on this line by display name.
func (l *Line) Station(name string) (*Station, bool) {
	s, ok := l.stations[name]
	return s, ok
}

// ResolveStation looks up a station by display name, failing with a
// line-numbered reference diagnostic if the line has no such station.
func (l *Line) ResolveStation(name string, textLineNumber int) (*Station, error) {
	s, ok := l.stations[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownStation,
			"(line %d) Station %s does not exist for line %s.", textLineNumber, name, l.name)
	}
	return s, nil
}

// AddStation adds a station to this line. Station display names must be
// unique within a line; redeclaring one fails immediately.
func (l *Line) AddStation(s *Station, textLineNumber int) error {
	if _, exists := l.stations[s.Name]; exists {
		return errors.New(errors.ErrCodeDuplicate,
			"(line %d) Redefinition of station %s on line %s.", textLineNumber, s.Name, l.name)
	}
	l.stations[s.Name] = s
	l.order = append(l.order, s)
	return nil
}

// AddEdge connects two stations on this line. Both endpoints must already
// have been declared as stations on the line.
func (l *Line) AddEdge(station1Name, station2Name string, textLineNumber int) error {
	s1, err := l.ResolveStation(station1Name, textLineNumber)
	if err != nil {
		return err
	}
	s2, err := l.ResolveStation(station2Name, textLineNumber)
	if err != nil {
		return err
	}

	key := newEdgeKey(station1Name, station2Name)
	if _, exists := l.edgeSet[key]; exists {
		return nil
	}
	l.edgeSet[key] = struct{}{}
	l.edges = append(l.edges, Edge{From: s1, To: s2})
	return nil
}

// HasEdge reports whether the two stations are connected on this line,
// in either orientation.
func (l *Line) HasEdge(station1Name, station2Name string) bool {
	_, ok := l.edgeSet[newEdgeKey(station1Name, station2Name)]
	return ok
}

// AddCurve records the curve kind for the edge between two stations.
// The stations must already form a declared edge on this line.
func (l *Line) AddCurve(station1Name, station2Name, kind string, textLineNumber int) error {
	s1, err := l.ResolveStation(station1Name, textLineNumber)
	if err != nil {
		return err
	}
	s2, err := l.ResolveStation(station2Name, textLineNumber)
	if err != nil {
		return err
	}

	if !l.HasEdge(station1Name, station2Name) {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Curve between %s and %s specified, but they are not connected in line %s.",
			textLineNumber, station1Name, station2Name, l.name)
	}

	l.curves = append(l.curves, Curve{From: s1, To: s2, Kind: kind})
	return nil
}

// CheckNoOrphanStations verifies that every station on this line has at
// least one incident edge. Returns an invariant error naming the first
// orphan found.
func (l *Line) CheckNoOrphanStations() error {
	for _, s := range l.order {
		if !l.hasEdgeWithStation(s) {
			return errors.New(errors.ErrCodeInvariant,
				"Line %s has orphan station %s.", l.name, s.Name)
		}
	}
	return nil
}

func (l *Line) hasEdgeWithStation(s *Station) bool {
	// Not the most efficient, but edge counts are small.
	for _, e := range l.edges {
		if e.ContainsStation(s) {
			return true
		}
	}
	return false
}

func (l *Line) String() string {
	return fmt.Sprintf("%s line with %d stations", l.name, len(l.stations))
}
