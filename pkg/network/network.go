// Package network holds the in-memory model of a metro network: lines,
// stations, edges, and curve annotations.
//
// The model is built incrementally by the DSL parser and is monotonic:
// entities are only ever added, never removed or mutated after creation.
// The one exception is the solver-produced station coordinates, which are
// assigned entirely outside this program. After parsing completes the model
// is validated once and thereafter treated as read-only by the constraint
// compiler.
package network

import (
	"github.com/alexandergillon/metromap/pkg/errors"
)

// FullLinePrefix disables line-name truncation when building station
// identifiers: the whole line name is used as the prefix.
const FullLinePrefix = -1

// Network is the set of metro lines in declaration order.
type Network struct {
	lines     map[string]*Line
	order     []*Line
	prefixLen int
}

// New creates an empty network. prefixLen controls how many characters of
// a line's name are used as the station-identifier prefix; pass
// FullLinePrefix to use whole line names.
func New(prefixLen int) *Network {
	return &Network{
		lines:     make(map[string]*Line),
		prefixLen: prefixLen,
	}
}

// PrefixLen returns the configured identifier prefix length.
func (n *Network) PrefixLen() int { return n.prefixLen }

// Lines returns the metro lines in declaration order.
// The returned slice must not be modified.
func (n *Network) Lines() []*Line { return n.order }

// Line looks up a metro line by name.
func (n *Network) Line(name string) (*Line, bool) {
	l, ok := n.lines[name]
	return l, ok
}

// AddLine creates a new metro line. Line names are globally unique;
// redeclaring one fails immediately.
func (n *Network) AddLine(name string, textLineNumber int) (*Line, error) {
	if _, exists := n.lines[name]; exists {
		return nil, errors.New(errors.ErrCodeDuplicate,
			"(line %d) Redefinition of line %s.", textLineNumber, name)
	}
	l := NewLine(name)
	n.lines[name] = l
	n.order = append(n.order, l)
	return l, nil
}

// Validate runs the post-parse invariant checks over the whole network:
// no line may contain an orphan station, and the configured line-name
// prefixes must yield distinct station-identifier namespaces. The first
// violation aborts the run.
func (n *Network) Validate() error {
	for _, l := range n.order {
		if err := l.CheckNoOrphanStations(); err != nil {
			return err
		}
	}
	return n.checkUniquePrefixes()
}

// checkUniquePrefixes verifies that truncating line names to the configured
// prefix length does not collapse two lines into the same identifier prefix,
// which would break station-identifier uniqueness.
func (n *Network) checkUniquePrefixes() error {
	if n.prefixLen == FullLinePrefix {
		return nil
	}
	seen := make(map[string]string, len(n.order))
	for _, l := range n.order {
		name := l.Name()
		prefix := name
		if n.prefixLen < len(name) {
			prefix = name[:n.prefixLen]
		}
		if other, exists := seen[prefix]; exists {
			return errors.New(errors.ErrCodeInvariant,
				"Metro line prefixes are not unique with prefix length %d: %s and %s share %q.",
				n.prefixLen, other, name, prefix)
		}
		seen[prefix] = name
	}
	return nil
}

// StationIDs returns the stable identifiers of every station in the
// network: lines in declaration order, stations in insertion order within
// each line. This is the solver-facing identifier domain.
func (n *Network) StationIDs() []string {
	var ids []string
	for _, l := range n.order {
		for _, s := range l.Stations() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
