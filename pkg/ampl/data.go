package ampl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexandergillon/metromap/pkg/network"
)

// WriteData writes the AMPL data file that accompanies the model: the map
// scale parameters and each station's authored grid coordinates, keyed by
// station identifier. The solver reads both files together; a model without
// its data file is unusable.
//
// Stations appear in the same order the model's preamble declares them, so
// data output is as deterministic as the model itself.
func (d *Driver) WriteData(w io.Writer, net *network.Network, scaleFactor, lineWidth int) error {
	if _, err := fmt.Fprintf(w, "param SCALE_FACTOR := %d;\n", scaleFactor); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "param LINE_WIDTH := %d;\n\n", lineWidth); err != nil {
		return err
	}

	var xTokens, yTokens []string
	for _, l := range net.Lines() {
		for _, s := range l.Stations() {
			xTokens = append(xTokens, fmt.Sprintf("%q %d", s.ID, s.OriginalX))
			yTokens = append(yTokens, fmt.Sprintf("%q %d", s.ID, s.OriginalY))
		}
	}

	if _, err := fmt.Fprintf(w, "param ORIGINAL_X_COORDS := %s;\n\n", strings.Join(xTokens, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "param ORIGINAL_Y_COORDS := %s;\n", strings.Join(yTokens, " "))
	return err
}
