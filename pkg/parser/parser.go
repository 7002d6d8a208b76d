// Package parser reads the line-oriented metro network DSL and populates
// the in-memory network model.
//
// Parsing is a stateful single forward pass. One piece of mutable context
// is maintained: the currently selected metro line, set by line statements
// and by the multi-line sentinel. Statements are classified by their
// leading keyword and dispatched to a handler that either mutates the
// network model immediately or defers an alignment constraint for
// resolution after the whole input has been read.
//
// Input format, one statement per logical line, '#' comments, blank lines
// ignored:
//
//	line <name>[:]
//	station "<display name>" <x> <y>
//	edges "<n1>, <n2>, ..., <nk>"
//	curve "<n1>, <n2>" <special|dir,dir>
//	multi-line
//	vertical|horizontal|up-right|up-left|down-right|down-left "<n1>, <n2>, ...>"
//	same-station|equal ...
package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/network"
)

// IdentifierProvider maps a station's display name to its stable external
// identifier. Implementations must fail with a no-mapping error for unknown
// names.
type IdentifierProvider interface {
	Resolve(lineName, stationName string) (string, error)
}

// cardinalKeywords maps constraint keywords to their normalized algebraic
// form. An up-left chain is the same set of points as a down-right chain
// read the other way, and likewise for down-left and up-right.
var cardinalKeywords = map[string]Cardinal{
	"vertical":   CardinalVertical,
	"horizontal": CardinalHorizontal,
	"up-right":   CardinalUpRight,
	"down-right": CardinalDownRight,
	"up-left":    CardinalDownRight,
	"down-left":  CardinalUpRight,
}

// validCurveDirections are the direction tokens allowed in a two-part
// curve kind.
var validCurveDirections = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"up-right": true, "up-left": true, "down-right": true, "down-left": true,
}

// Parser reads metro network data from a DSL input.
type Parser struct {
	provider    IdentifierProvider
	network     *network.Network
	constraints []Constraint
	ctx         Context
}

// New creates a parser resolving station identifiers through provider.
// prefixLen is the line-name prefix length used when building station
// identifiers (network.FullLinePrefix to use whole names).
func New(provider IdentifierProvider, prefixLen int) *Parser {
	return &Parser{
		provider: provider,
		network:  network.New(prefixLen),
		ctx:      NoContext,
	}
}

// Parse consumes the whole input and returns the populated network model
// together with the deferred alignment constraints, in the order they were
// recorded. The returned network has not yet been validated; callers run
// network.Validate before handing the model to the constraint compiler.
//
// Parsing aborts at the first violated invariant. Every diagnostic carries
// the 1-based source line number of the offending statement.
func (p *Parser) Parse(r io.Reader) (*network.Network, []Constraint, error) {
	scanner := NewScanner(r)
	for scanner.Scan() {
		if err := p.dispatch(scanner.Statement()); err != nil {
			return nil, nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "reading input")
	}
	return p.network, p.constraints, nil
}

// dispatch classifies a statement by its leading keyword and applies it.
func (p *Parser) dispatch(stmt Statement) error {
	kw, rest := keyword(stmt.Text)

	switch kw {
	case "line":
		return p.parseLine(rest, stmt.LineNumber)
	case "station":
		return p.parseStation(rest, stmt.LineNumber)
	case "edges":
		return p.parseEdges(rest, stmt.LineNumber)
	case "curve":
		return p.parseCurve(rest, stmt.LineNumber)
	case "multi-line":
		p.ctx = MultiContext
		return nil
	case "same-station":
		p.constraints = append(p.constraints, Constraint{
			Kind:       ConstraintSameStation,
			Text:       stmt.Text,
			Context:    p.ctx,
			LineNumber: stmt.LineNumber,
		})
		return nil
	case "equal":
		p.constraints = append(p.constraints, Constraint{
			Kind:       ConstraintEqual,
			Text:       stmt.Text,
			Context:    p.ctx,
			LineNumber: stmt.LineNumber,
		})
		return nil
	}

	if cardinal, ok := cardinalKeywords[kw]; ok {
		p.constraints = append(p.constraints, Constraint{
			Kind:       ConstraintCardinal,
			Cardinal:   cardinal,
			Text:       string(cardinal) + " " + rest,
			Context:    p.ctx,
			LineNumber: stmt.LineNumber,
		})
		return nil
	}

	return errors.New(errors.ErrCodeStructural,
		"(line %d) Statement with unrecognized form: %q.", stmt.LineNumber, stmt.Text)
}

// parseLine handles a line statement: creates a new metro line and makes
// it the current context. A trailing colon on the name is cosmetic.
func (p *Parser) parseLine(rest string, textLineNumber int) error {
	name, _, _ := strings.Cut(rest, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Line statement does not have a metro line name.", textLineNumber)
	}
	if strings.ContainsFunc(name, isSpace) {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Metro line name %q contains whitespace.", textLineNumber, name)
	}

	l, err := p.network.AddLine(name, textLineNumber)
	if err != nil {
		return err
	}
	p.ctx = LineContext(l)
	return nil
}

// parseStation handles a station statement: a quoted display name followed
// by two integer grid coordinates. The station's stable identifier is
// resolved through the identifier provider before the station is created.
func (p *Parser) parseStation(rest string, textLineNumber int) error {
	line, ok := p.ctx.Line()
	if !ok {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Station declared before a current line was set.", textLineNumber)
	}

	name, coords, err := consumeQuoted(rest, textLineNumber)
	if err != nil {
		return err
	}

	tokens := strings.Fields(coords)
	if len(tokens) != 2 {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Station declaration does not have both coordinates, or has trailing text.", textLineNumber)
	}
	x, errX := strconv.Atoi(tokens[0])
	y, errY := strconv.Atoi(tokens[1])
	if errX != nil || errY != nil {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Station declaration contains coordinate which is not an integer.", textLineNumber)
	}

	id, err := p.provider.Resolve(line.Name(), name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNoIdentifier, err,
			"(line %d) No identifier mapping for station %q", textLineNumber, name)
	}

	station := network.NewStation(line.Name(), name, id, x, y, p.network.PrefixLen())
	return line.AddStation(station, textLineNumber)
}

// parseEdges handles an edges statement: a quoted comma-separated chain of
// at least two station names, connected pairwise in order.
func (p *Parser) parseEdges(rest string, textLineNumber int) error {
	line, ok := p.ctx.Line()
	if !ok {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Edges declared before a current line was set.", textLineNumber)
	}

	chain, _, err := consumeQuoted(rest, textLineNumber)
	if err != nil {
		return err
	}

	pairs, err := consecutivePairs(splitNames(chain), textLineNumber)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		if err := line.AddEdge(pair[0], pair[1], textLineNumber); err != nil {
			return err
		}
	}
	return nil
}

// parseCurve handles a curve statement: exactly two quoted station names
// followed by a curve kind, which is either the literal "special" or a
// comma-separated pair of direction tokens. The two stations must already
// form a declared edge.
func (p *Parser) parseCurve(rest string, textLineNumber int) error {
	line, ok := p.ctx.Line()
	if !ok {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Curve declared before a current line was set.", textLineNumber)
	}

	stationsText, kindText, err := consumeQuoted(rest, textLineNumber)
	if err != nil {
		return err
	}

	kind, err := parseCurveKind(kindText, textLineNumber)
	if err != nil {
		return err
	}

	names := splitNames(stationsText)
	if len(names) != 2 {
		return errors.New(errors.ErrCodeStructural,
			"(line %d) Curve declaration does not have two stations.", textLineNumber)
	}

	return line.AddCurve(names[0], names[1], kind, textLineNumber)
}

// parseCurveKind validates a curve kind token.
func parseCurveKind(text string, textLineNumber int) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) != 1 {
		return "", errors.New(errors.ErrCodeStructural,
			"(line %d) Invalid curve type %q.", textLineNumber, text)
	}

	kind := tokens[0]
	if kind == "special" {
		return kind, nil
	}

	directions := strings.Split(kind, ",")
	if len(directions) != 2 || !validCurveDirections[directions[0]] || !validCurveDirections[directions[1]] {
		return "", errors.New(errors.ErrCodeStructural,
			"(line %d) Invalid curve type %q.", textLineNumber, text)
	}
	return kind, nil
}
