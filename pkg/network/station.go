package network

import (
	"fmt"
	"strings"
)

// UnsolvedCoord is the value of a station's solved coordinates before the
// external solver has run.
const UnsolvedCoord = -1

// Station represents a single stop on a metro line. A station belongs to
// exactly one line; interchanges are modeled as one station per line, tied
// together on the map by alignment constraints.
type Station struct {
	// LineName is the name of the metro line this station belongs to.
	LineName string

	// Name is the display name of the station. Unique within its line,
	// not globally.
	Name string

	// ID is the stable solver-facing identifier for this station, built
	// from a reduced line-name prefix and the externally resolved station
	// identifier. Unique across the whole network as long as external
	// identifiers are unique.
	ID string

	// OriginalX and OriginalY are the grid coordinates as authored in the
	// input file.
	OriginalX int
	OriginalY int

	// SolvedX and SolvedY are the final map coordinates. They are populated
	// by the external solver, never by this program, and hold UnsolvedCoord
	// until then.
	SolvedX int
	SolvedY int
}

// NewStation creates a station and derives its stable identifier.
//
// The identifier is "<prefix>_<externalID>", where prefix is the line name
// truncated to prefixLen characters (-1 keeps the whole name) with '-'
// removed. The solver cannot handle '-' in identifiers it builds names from.
func NewStation(lineName, name, externalID string, x, y, prefixLen int) *Station {
	prefix := lineName
	if prefixLen >= 0 && prefixLen < len(lineName) {
		prefix = lineName[:prefixLen]
	}
	prefix = strings.ReplaceAll(prefix, "-", "")

	return &Station{
		LineName:  lineName,
		Name:      name,
		ID:        fmt.Sprintf("%s_%s", prefix, externalID),
		OriginalX: x,
		OriginalY: y,
		SolvedX:   UnsolvedCoord,
		SolvedY:   UnsolvedCoord,
	}
}

func (s *Station) String() string {
	return fmt.Sprintf("%s line station %s (%s)", s.LineName, s.Name, s.ID)
}
