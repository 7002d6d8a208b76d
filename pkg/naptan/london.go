package naptan

// LondonOverrides is the override table for the London Underground.
//
// A few stations occupy two distinct positions on the map under one public
// name (branch splits and paired sub-stations); they get a suffix attached
// to the base NAPTAN ID so the solver treats them as separate points. Two
// further entries paper over quirks in the TfL stop-point data.
func LondonOverrides(r *Reader, lineName, stationName string) (string, bool, error) {
	suffixed := func(baseLine, baseStation, suffix string) (string, bool, error) {
		id, err := r.mustLookup(baseLine, baseStation)
		if err != nil {
			return "", false, err
		}
		return id + suffix, true, nil
	}

	switch stationName {
	case "Euston (Charing Cross branch)":
		return suffixed("northern", "Euston", "_CC")
	case "Euston (Bank branch)":
		return suffixed("northern", "Euston", "_B")
	case "Edgware Road (Circle Line) w/ H&C":
		return suffixed("circle", "Edgware Road (Circle Line)", "_HC")
	case "Edgware Road (Circle Line) w/ District":
		return suffixed("circle", "Edgware Road (Circle Line)", "_D")
	case "Paddington":
		// The stop-point API lists Paddington on the Bakerloo line as
		// 940GZZLUPAC, but arrival data uses 940GZZLUPAH.
		// See https://techforum.tfl.gov.uk/t/confused-by-tube-arrivals-at-paddington/1498/19
		if lineName == "bakerloo" {
			return "940GZZLUPAH", true, nil
		}
	case "Neasden":
		// TfL stop data does not list Neasden on the Metropolitan line,
		// but arrival data has it; reuse the Jubilee stop.
		if lineName == "metropolitan" {
			id, err := r.mustLookup("jubilee", "Neasden")
			if err != nil {
				return "", false, err
			}
			return id, true, nil
		}
	}

	return "", false, nil
}
