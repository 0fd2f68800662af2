package wikidump

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoCoord is returned by ParseCoords when an article carries no
// coordinate template.
var ErrNoCoord = errors.New("no coord data found")

var coordRE = regexp.MustCompile(`(?mi)\{\{coord\|(.[^}]*)\}\}`)

// A Coord is a geographical position in decimal degrees.
type Coord struct {
	Lon float64
	Lat float64
}

// ParseCoords extracts the first {{coord|...}} template from an
// article body, as specified in
// http://en.wikipedia.org/wiki/Wikipedia:WikiProject_Geographical_coordinates
//
// Decimal ({{coord|12.3|-45.6}}) and sexagesimal
// ({{coord|51|30|26|N|0|7|39|W}}) forms are both handled.
func ParseCoords(text string) (Coord, error) {
	cleaned := nowikiRE.ReplaceAllString(commentRE.ReplaceAllString(text, ""), "")
	m := coordRE.FindStringSubmatch(cleaned)
	if m == nil {
		return Coord{}, ErrNoCoord
	}

	parts := strings.Split(m[1], "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Skip leading non-numeric arguments ({{coord|display=title|...}}).
	first := 0
	for ; first < len(parts); first++ {
		if _, err := strconv.ParseFloat(parts[first], 64); err == nil {
			break
		}
	}
	parts = parts[first:]

	lat, rest, err := parseAngle(parts, "N", "S")
	if err != nil {
		return Coord{}, err
	}
	lon, _, err := parseAngle(rest, "E", "W")
	if err != nil {
		return Coord{}, err
	}

	if math.Abs(lat) > 90 {
		return Coord{}, fmt.Errorf("invalid latitude: %v", lat)
	}
	if math.Abs(lon) > 180 {
		return Coord{}, fmt.Errorf("invalid longitude: %v", lon)
	}
	return Coord{Lat: lat, Lon: lon}, nil
}

// parseAngle consumes one angle from parts. With a hemisphere letter
// present it takes up to three numbers as degrees, minutes, seconds;
// without one it takes a single signed decimal value. It returns the
// remaining parts.
func parseAngle(parts []string, pos, neg string) (float64, []string, error) {
	nums := make([]float64, 0, 3)
	for len(nums) < 3 && len(nums) < len(parts) {
		f, err := strconv.ParseFloat(parts[len(nums)], 64)
		if err != nil {
			break
		}
		nums = append(nums, f)
	}
	if len(nums) == 0 {
		return 0, nil, ErrNoCoord
	}

	hemi := ""
	if len(nums) < len(parts) && (parts[len(nums)] == pos || parts[len(nums)] == neg) {
		hemi = parts[len(nums)]
	}
	if hemi == "" {
		// Decimal form: one signed value, no hemisphere letter.
		return nums[0], parts[1:], nil
	}

	v := 0.0
	div := 1.0
	for _, f := range nums {
		v += f / div
		div *= 60
	}
	if hemi == neg {
		v = -v
	}
	return v, parts[len(nums)+1:], nil
}
