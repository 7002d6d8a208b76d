// Package ampl compiles deferred alignment constraints into an AMPL model
// file for the external layout solver.
//
// The compiler runs after the network model has been fully built and
// validated. It first writes a preamble declaring the station-identifier
// domain, then translates each deferred constraint into named equality
// constraints over the solver's coordinate variables. The compiler is
// stateless beyond the output stream it writes to: compiling the same
// network and constraint list twice produces byte-identical output.
package ampl

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/network"
	"github.com/alexandergillon/metromap/pkg/parser"
)

//go:embed initial_model.mod
var defaultTemplate string

// placeholder marks where the station set is substituted into the base
// model template.
const placeholder = "%"

// Driver writes AMPL model files.
type Driver struct {
	template string
}

// NewDriver creates a driver using the embedded base model template.
func NewDriver() *Driver {
	return &Driver{template: defaultTemplate}
}

// NewDriverWithTemplate creates a driver using a caller-supplied base model
// template. The template must contain a single '%' placeholder for the
// station set.
func NewDriverWithTemplate(template string) *Driver {
	return &Driver{template: template}
}

// WriteModel writes the complete model: the preamble declaring the station
// identifier domain, then one named equality constraint per resolved
// consecutive station pair of each deferred constraint, in the order the
// constraints were recorded.
//
// The network must already have been validated. Constraint station
// references are resolved here, not at parse time, so forward references
// in the input are legitimate.
func (d *Driver) WriteModel(w io.Writer, net *network.Network, constraints []parser.Constraint) error {
	if err := d.writePreamble(w, net); err != nil {
		return err
	}
	for _, c := range constraints {
		if err := d.writeConstraint(w, c); err != nil {
			return err
		}
	}
	return nil
}

// writePreamble substitutes the station-identifier domain into the base
// model template: lines in declaration order, stations in insertion order
// within each line, each identifier quoted, comma-joined.
func (d *Driver) writePreamble(w io.Writer, net *network.Network) error {
	before, after, found := strings.Cut(d.template, placeholder)
	if !found {
		return errors.New(errors.ErrCodeConfig, "Cannot find %% in initial AMPL model template.")
	}

	ids := net.StationIDs()
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}

	_, err := fmt.Fprintf(w, "%s%s%s\n", before, strings.Join(quoted, ", "), after)
	return err
}

// writeConstraint compiles one deferred constraint. Multi-line scoped
// cardinal constraints and same-station/equal constraints are recognized
// but have no compilation yet; they surface as unsupported rather than
// being silently dropped.
func (d *Driver) writeConstraint(w io.Writer, c parser.Constraint) error {
	switch c.Kind {
	case parser.ConstraintCardinal:
		return d.writeCardinalConstraint(w, c)
	case parser.ConstraintSameStation:
		return errors.New(errors.ErrCodeUnsupported,
			"(line %d) same-station constraints are not yet compiled.", c.LineNumber)
	case parser.ConstraintEqual:
		return errors.New(errors.ErrCodeUnsupported,
			"(line %d) equal constraints are not yet compiled.", c.LineNumber)
	default:
		return errors.New(errors.ErrCodeInternal,
			"(line %d) Unknown constraint kind %d.", c.LineNumber, c.Kind)
	}
}

// writeCardinalConstraint resolves a cardinal constraint's station chain
// against its target line and emits one equality per consecutive pair.
func (d *Driver) writeCardinalConstraint(w io.Writer, c parser.Constraint) error {
	line, ok := c.Context.Line()
	if !ok {
		return errors.New(errors.ErrCodeUnsupported,
			"(line %d) Constraints outside a single metro line context are not yet supported.", c.LineNumber)
	}

	names, err := c.StationChain()
	if err != nil {
		return err
	}

	for i := 0; i+1 < len(names); i++ {
		s1, err := line.ResolveStation(names[i], c.LineNumber)
		if err != nil {
			return err
		}
		s2, err := line.ResolveStation(names[i+1], c.LineNumber)
		if err != nil {
			return err
		}
		if err := writeEquality(w, c.Cardinal, s1.ID, s2.ID); err != nil {
			return err
		}
	}
	return nil
}

// writeEquality emits one named equality constraint between two station
// identifiers. Constraint names are derived from the kind and the two
// identifiers, so they are unique as long as station identifiers are.
func writeEquality(w io.Writer, kind parser.Cardinal, id1, id2 string) error {
	var err error
	switch kind {
	case parser.CardinalVertical:
		_, err = fmt.Fprintf(w, "subject to vertical_%s_%s: SOLVED_X_COORDS[%q] = SOLVED_X_COORDS[%q];\n",
			sanitize(id1), sanitize(id2), id1, id2)
	case parser.CardinalHorizontal:
		_, err = fmt.Fprintf(w, "subject to horizontal_%s_%s: SOLVED_Y_COORDS[%q] = SOLVED_Y_COORDS[%q];\n",
			sanitize(id1), sanitize(id2), id1, id2)
	case parser.CardinalUpRight:
		_, err = fmt.Fprintf(w, "subject to rising_diagonal_%s_%s: SOLVED_X_COORDS[%q] - SOLVED_X_COORDS[%q] = -(SOLVED_Y_COORDS[%q] - SOLVED_Y_COORDS[%q]);\n",
			sanitize(id1), sanitize(id2), id1, id2, id1, id2)
	case parser.CardinalDownRight:
		_, err = fmt.Fprintf(w, "subject to falling_diagonal_%s_%s: SOLVED_X_COORDS[%q] - SOLVED_X_COORDS[%q] = SOLVED_Y_COORDS[%q] - SOLVED_Y_COORDS[%q];\n",
			sanitize(id1), sanitize(id2), id1, id2, id1, id2)
	default:
		err = errors.New(errors.ErrCodeInternal, "Unknown cardinal constraint kind %q.", kind)
	}
	return err
}

// sanitize rewrites an identifier for use inside an AMPL constraint name.
// AMPL cannot handle '-' in identifiers.
func sanitize(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}
