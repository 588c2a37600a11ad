package geo

import (
	"regexp"
	"strconv"
)

// The supported map-link shapes, in priority order. First match wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`),      // /maps/@lat,lng
	regexp.MustCompile(`[?&]q=(-?\d+\.\d+),(-?\d+\.\d+)`), // search query
	regexp.MustCompile(`[?&]ll=(-?\d+\.\d+),(-?\d+\.\d+)`),
	regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`), // embedded data segment
}

// ExtractCoordinates pulls a latitude/longitude pair out of a map link.
// Out-of-range values pass through untouched; a link matching none of the
// known shapes simply has no location.
func ExtractCoordinates(url string) (lat, lng float64, ok bool) {
	if url == "" {
		return 0, 0, false
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		return lat, lng, true
	}
	return 0, 0, false
}
