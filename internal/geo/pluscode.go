package geo

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"carpool-planner/internal/domain"
)

// Compact location codes are base-20 grid codes: a prefix of symbol pairs,
// each pair one refinement level over latitude/longitude starting at the
// southwest corner of the coordinate space, then a `+`, then a suffix whose
// first symbol refines the cell on a 5x4 sub-grid.
const (
	// codeAlphabet excludes visually ambiguous characters (0 1 A E I L O S U Z).
	codeAlphabet = "23456789CFGHJMPQRVWX"

	fullPrefixLength = 8
	gridRows         = 5
	gridCols         = 4
)

// pairPrecisions is the degree width of one symbol at each pair level.
var pairPrecisions = [...]float64{20.0, 1.0, 0.05, 0.0025, 0.000125}

// gridPrecision is the degree width of one sub-grid row/column step.
const gridPrecision = 0.000125 / gridRows

var codePattern = regexp.MustCompile(`(?i)([23456789CFGHJMPQRVWX]{2,8}\+[23456789CFGHJMPQRVWX]{2,3})`)

// FindCode scans free text for a compact location code. It returns the code,
// the remaining text (locality context for short codes), and whether a code
// was found.
func FindCode(text string) (code, locality string, ok bool) {
	match := codePattern.FindString(text)
	if match == "" {
		return "", "", false
	}

	rest := strings.Replace(text, match, "", 1)
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, ",")
	rest = strings.TrimSuffix(rest, ",")
	rest = strings.TrimSpace(rest)

	return strings.ToUpper(match), rest, true
}

// Decode resolves a compact code to the center of its grid cell.
//
// Full codes (8-symbol prefix) decode absolutely. Short codes need an anchor
// coordinate for the named locality; without one decoding fails with
// MissingLocalityContextError.
func Decode(code string, anchor *domain.Coordinate) (domain.Coordinate, error) {
	code = strings.ToUpper(strings.ReplaceAll(code, " ", ""))

	prefix, suffix, found := strings.Cut(code, "+")
	if !found {
		return domain.Coordinate{}, fmt.Errorf("invalid code %q: missing + separator", code)
	}
	if strings.Contains(suffix, "+") {
		return domain.Coordinate{}, fmt.Errorf("invalid code %q: more than one + separator", code)
	}

	for _, r := range prefix + suffix {
		if !strings.ContainsRune(codeAlphabet, r) {
			return domain.Coordinate{}, fmt.Errorf("invalid code character %q in %q", r, code)
		}
	}

	if len(prefix) < fullPrefixLength {
		if anchor == nil {
			return domain.Coordinate{}, &domain.MissingLocalityContextError{Code: code}
		}
		return decodeShort(prefix, suffix, *anchor), nil
	}

	return decodeFull(prefix, suffix), nil
}

// decodeFull accumulates pair refinements from the southwest corner of the
// full coordinate space, applies the sub-grid symbol if present, and centers
// the result in its cell.
func decodeFull(prefix, suffix string) domain.Coordinate {
	lat := -90.0
	lng := -180.0

	for i := 0; i+1 < len(prefix); i += 2 {
		precision := pairPrecisions[len(pairPrecisions)-1]
		if level := i / 2; level < len(pairPrecisions) {
			precision = pairPrecisions[level]
		}

		lat += float64(strings.IndexByte(codeAlphabet, prefix[i])) * precision
		lng += float64(strings.IndexByte(codeAlphabet, prefix[i+1])) * precision
	}

	finalPrecision := pairPrecisions[min((len(prefix)/2)-1, len(pairPrecisions)-1)]
	if len(suffix) > 0 {
		gridIndex := strings.IndexByte(codeAlphabet, suffix[0])
		lat += float64(gridIndex/gridCols) * gridPrecision
		lng += float64(gridIndex%gridCols) * gridPrecision
		finalPrecision = gridPrecision
	}

	return domain.Coordinate{
		Lat: lat + finalPrecision/2,
		Lng: lng + finalPrecision/2,
	}
}

// decodeShort offsets a locality anchor by the available prefix/suffix
// symbols at fixed fine-grained precision.
func decodeShort(prefix, suffix string, anchor domain.Coordinate) domain.Coordinate {
	var latOffset, lngOffset float64

	for i := 0; i+1 < len(prefix); i += 2 {
		latOffset += float64(strings.IndexByte(codeAlphabet, prefix[i])) * 0.0025
		lngOffset += float64(strings.IndexByte(codeAlphabet, prefix[i+1])) * 0.0025
	}

	if len(suffix) > 0 {
		gridIndex := strings.IndexByte(codeAlphabet, suffix[0])
		latOffset += float64(gridIndex/gridCols) * 0.000125
		lngOffset += float64(gridIndex%gridCols) * 0.000125
	}

	return domain.Coordinate{
		Lat: anchor.Lat + latOffset,
		Lng: anchor.Lng + lngOffset,
	}
}

// Encode produces the full-precision code whose cell center is the given
// coordinate: an 8-symbol prefix, the separator, and one sub-grid symbol.
// Decoding an encoded code yields the input back (cell-center fixpoint).
func Encode(c domain.Coordinate) string {
	// Shift to the cell's southwest corner before slicing into symbols.
	lat := c.Lat + 90 - gridPrecision/2
	lng := c.Lng + 180 - gridPrecision/2

	var b strings.Builder
	for level := 0; level < fullPrefixLength/2; level++ {
		precision := pairPrecisions[level]

		latIndex := clampIndex(lat / precision)
		lngIndex := clampIndex(lng / precision)

		b.WriteByte(codeAlphabet[latIndex])
		b.WriteByte(codeAlphabet[lngIndex])

		lat -= float64(latIndex) * precision
		lng -= float64(lngIndex) * precision
	}

	gridLat := clampGrid(lat/gridPrecision, gridRows)
	gridLng := clampGrid(lng/gridPrecision, gridCols)

	b.WriteByte('+')
	b.WriteByte(codeAlphabet[gridLat*gridCols+gridLng])

	return b.String()
}

// clampIndex floors with a tolerance for accumulated float error and clamps
// into the symbol range.
func clampIndex(v float64) int {
	i := int(math.Floor(v + 1e-6))
	if i < 0 {
		return 0
	}
	if i >= len(codeAlphabet) {
		return len(codeAlphabet) - 1
	}
	return i
}

func clampGrid(v float64, limit int) int {
	i := int(math.Floor(v + 1e-6))
	if i < 0 {
		return 0
	}
	if i >= limit {
		return limit - 1
	}
	return i
}
