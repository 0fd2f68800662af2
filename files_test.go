package wikidump

import (
	"reflect"
	"testing"
)

func TestFindFiles(t *testing.T) {
	tests := []struct {
		name, input string
		want        []string
	}{
		{"file", "[[File:Example.jpg|thumb|caption]]", []string{"Example.jpg"}},
		{"image", "[[Image:Old style.png]]", []string{"Old style.png"}},
		{"lowercase", "[[file:lower.svg]]", []string{"lower.svg"}},
		{"commented", "<!-- [[File:Hidden.gif]] -->", []string{"Hidden.gif"}},
		{"nowiki", "<nowiki>[[File:Nope.png]]</nowiki>", []string{}},
		{"several", "[[File:a.png]] text [[File:b.png|x]]", []string{"a.png", "b.png"}},
		{"none", "nothing here", []string{}},
	}

	for _, test := range tests {
		got := FindFiles(test.input)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%v: FindFiles(%q) = %#v, want %#v",
				test.name, test.input, got, test.want)
		}
	}
}
