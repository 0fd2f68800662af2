package wikidump

import (
	"math"
	"testing"
)

func assertEpsilon(t *testing.T, field, input string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%v of %q = %v, want %v", field, input, got, want)
	}
}

func TestParseCoords(t *testing.T) {
	tests := []struct {
		input    string
		lat, lon float64
	}{
		{"{{coord|51.5|-0.116}}", 51.5, -0.116},
		{"{{Coord|51.5|N|0.116|W}}", 51.5, -0.116},
		{"{{coord|51|30|N|0|7|W}}", 51.5, -7.0 / 60},
		{"{{coord|51|30|26|N|0|7|39|W|display=title}}", 51.507222, -0.1275},
		{"{{coord|35|41|S|139|41|E}}", -(35 + 41.0/60), 139 + 41.0/60},
		{"text before {{coord|10|20}} text after", 10, 20},
		{"{{coord|display=inline|33.8|-117.9}}", 33.8, -117.9},
	}

	for _, test := range tests {
		got, err := ParseCoords(test.input)
		if err != nil {
			t.Errorf("ParseCoords(%q) error: %v", test.input, err)
			continue
		}
		assertEpsilon(t, "lat", test.input, got.Lat, test.lat)
		assertEpsilon(t, "lon", test.input, got.Lon, test.lon)
	}
}

func TestParseCoordsAbsent(t *testing.T) {
	tests := []string{
		"no templates at all",
		"{{citation needed}}",
		"<nowiki>{{coord|1|2}}</nowiki>",
		"<!-- {{coord|1|2}} -->",
	}
	for _, input := range tests {
		if _, err := ParseCoords(input); err != ErrNoCoord {
			t.Errorf("ParseCoords(%q) err = %v, want ErrNoCoord", input, err)
		}
	}
}

func TestParseCoordsInvalid(t *testing.T) {
	tests := []string{
		"{{coord|100|0}}",  // latitude out of range
		"{{coord|0|181}}",  // longitude out of range
		"{{coord|words}}",  // nothing numeric
	}
	for _, input := range tests {
		if _, err := ParseCoords(input); err == nil {
			t.Errorf("ParseCoords(%q) succeeded, want error", input)
		}
	}
}
