package parser

import (
	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/network"
)

// ConstraintKind distinguishes the deferred constraint statement families.
type ConstraintKind int

const (
	// ConstraintCardinal is a vertical/horizontal/diagonal alignment chain.
	ConstraintCardinal ConstraintKind = iota
	// ConstraintSameStation ties two co-located stations together.
	// Recognized but not yet compiled.
	ConstraintSameStation
	// ConstraintEqual is a raw coordinate equality between stations.
	// Recognized but not yet compiled.
	ConstraintEqual
)

// Cardinal identifies the algebraic form of a cardinal alignment
// constraint. The parser normalizes up-left to down-right and down-left to
// up-right, so only these four reach the compiler.
type Cardinal string

const (
	CardinalVertical   Cardinal = "vertical"
	CardinalHorizontal Cardinal = "horizontal"
	CardinalUpRight    Cardinal = "up-right"
	CardinalDownRight  Cardinal = "down-right"
)

// Context is the current-line selection in force when a statement is read:
// no line yet, a specific metro line, or the multi-line sentinel set by a
// multi-line statement.
type Context struct {
	line  *network.Line
	multi bool
}

// NoContext is the context before any line statement has been seen.
var NoContext = Context{}

// MultiContext is the sentinel meaning a constraint applies independently
// to whichever line each referenced station belongs to.
var MultiContext = Context{multi: true}

// LineContext selects a specific metro line.
func LineContext(l *network.Line) Context { return Context{line: l} }

// Line returns the selected metro line, if the context names one.
func (c Context) Line() (*network.Line, bool) { return c.line, c.line != nil }

// IsMulti reports whether this is the multi-line sentinel.
func (c Context) IsMulti() bool { return c.multi }

// Constraint is a deferred alignment statement. Constraints are collected
// verbatim during parsing and resolved against the network only after the
// whole input has been parsed and validated, because a constraint may be
// written before all stations it references have been declared.
type Constraint struct {
	// Kind tags the statement family.
	Kind ConstraintKind

	// Cardinal is the algebraic form, for ConstraintCardinal.
	Cardinal Cardinal

	// Text is the raw statement as read (after direction-keyword
	// normalization), including the keyword.
	Text string

	// Context is the current-line selection in force when the statement
	// was read.
	Context Context

	// LineNumber is the 1-based source position, for diagnostics.
	LineNumber int
}

// StationChain decodes the quoted comma-separated station names of a
// cardinal constraint statement. A chain of fewer than two names is
// malformed.
func (c Constraint) StationChain() ([]string, error) {
	_, rest := keyword(c.Text)
	chain, _, err := consumeQuoted(rest, c.LineNumber)
	if err != nil {
		return nil, err
	}
	names := splitNames(chain)
	if len(names) < 2 {
		return nil, errors.New(errors.ErrCodeStructural,
			"(line %d) Constraint has fewer than two stations when >= 2 were expected.", c.LineNumber)
	}
	return names, nil
}
