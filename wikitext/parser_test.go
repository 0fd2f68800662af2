package wikitext

import (
	"reflect"
	"testing"
)

func parse(t *testing.T, s string) []Node {
	t.Helper()
	return DefaultConfiguration().Parse(s).Nodes
}

func TestParsePlainText(t *testing.T) {
	nodes := parse(t, "just some text")
	want := []Node{Text{Value: "just some text"}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseParagraphs(t *testing.T) {
	nodes := parse(t, "one\n\ntwo")
	want := []Node{
		Text{Value: "one"},
		ParagraphBreak{},
		Text{Value: "two"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseInnerNewline(t *testing.T) {
	// A single newline stays inside the paragraph.
	nodes := parse(t, "one\ntwo")
	want := []Node{Text{Value: "one\ntwo"}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseHeadings(t *testing.T) {
	tests := []struct {
		input string
		level int
		text  string
	}{
		{"== Simple ==", 2, "Simple"},
		{"=Tight=", 1, "Tight"},
		{"====Deep====", 4, "Deep"},
		{"== Trailing ==   ", 2, "Trailing"},
	}
	for _, test := range tests {
		nodes := parse(t, test.input)
		if len(nodes) != 1 {
			t.Fatalf("Parse(%q) = %#v, want one heading", test.input, nodes)
		}
		h, ok := nodes[0].(Heading)
		if !ok {
			t.Fatalf("Parse(%q) = %#v, not a heading", test.input, nodes[0])
		}
		if h.Level != test.level {
			t.Errorf("Parse(%q) level = %v, want %v", test.input, h.Level, test.level)
		}
		if !reflect.DeepEqual(h.Nodes, []Node{Text{Value: test.text}}) {
			t.Errorf("Parse(%q) content = %#v", test.input, h.Nodes)
		}
	}
}

func TestParseNotAHeading(t *testing.T) {
	nodes := parse(t, "=no closing marker")
	if _, ok := nodes[0].(Heading); ok {
		t.Errorf("Parse treated %q as a heading", "=no closing marker")
	}
}

func TestParseLinks(t *testing.T) {
	nodes := parse(t, "[[target|display]]")
	want := []Node{Link{Target: "target", Text: []Node{Text{Value: "display"}}}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}

	nodes = parse(t, "[[bare]]")
	want = []Node{Link{Target: "bare", Text: []Node{Text{Value: "bare"}}}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseLinkTrail(t *testing.T) {
	nodes := parse(t, "[[run]]ning")
	want := []Node{Link{Target: "run", Text: []Node{
		Text{Value: "run"},
		Text{Value: "ning"},
	}}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseCategoryAndFile(t *testing.T) {
	nodes := parse(t, "[[Category:Towns]]")
	if !reflect.DeepEqual(nodes, []Node{Category{Target: "Category:Towns"}}) {
		t.Errorf("Parse = %#v, want a category", nodes)
	}

	nodes = parse(t, "[[File:Photo.jpg|thumb|caption]]")
	img, ok := nodes[0].(Image)
	if !ok {
		t.Fatalf("Parse = %#v, want an image", nodes)
	}
	if img.Target != "File:Photo.jpg" {
		t.Errorf("Image target = %q", img.Target)
	}

	// Leading colon escapes the namespace.
	nodes = parse(t, "[[:Category:Towns]]")
	if _, ok := nodes[0].(Link); !ok {
		t.Errorf("Parse = %#v, want an escaped plain link", nodes)
	}
}

func TestParseExternalLink(t *testing.T) {
	nodes := parse(t, "[https://example.com some label]")
	want := []Node{ExternalLink{
		Target: "https://example.com",
		Nodes:  []Node{Text{Value: "some label"}},
	}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}

	// Unknown protocol: not an external link.
	nodes = parse(t, "[not a link]")
	want = []Node{Text{Value: "[not a link]"}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseTemplates(t *testing.T) {
	nodes := parse(t, "{{cite web|url=http://x|title=y}}")
	want := []Node{Template{
		Name:       "cite web",
		Parameters: []string{"url=http://x", "title=y"},
	}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}

	nodes = parse(t, "{{outer|{{inner}}}}")
	tmpl, ok := nodes[0].(Template)
	if !ok || tmpl.Name != "outer" {
		t.Errorf("Parse = %#v, want outer template", nodes)
	}

	nodes = parse(t, "{{{1}}}")
	if !reflect.DeepEqual(nodes, []Node{Parameter{Name: "1"}}) {
		t.Errorf("Parse = %#v, want a parameter", nodes)
	}
}

func TestParseFormatting(t *testing.T) {
	nodes := parse(t, "'''''all''''' '''b''' ''i''")
	want := []Node{
		BoldItalic{}, Text{Value: "all"}, BoldItalic{}, Text{Value: " "},
		Bold{}, Text{Value: "b"}, Bold{}, Text{Value: " "},
		Italic{}, Text{Value: "i"}, Italic{},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseLists(t *testing.T) {
	nodes := parse(t, "* one\n* two\n# first\n# second")
	if len(nodes) != 2 {
		t.Fatalf("Parse = %#v, want two lists", nodes)
	}
	ul, ok := nodes[0].(UnorderedList)
	if !ok || len(ul.Items) != 2 {
		t.Errorf("First node = %#v, want 2-item unordered list", nodes[0])
	}
	ol, ok := nodes[1].(OrderedList)
	if !ok || len(ol.Items) != 2 {
		t.Errorf("Second node = %#v, want 2-item ordered list", nodes[1])
	}
}

func TestParseDefinitionList(t *testing.T) {
	nodes := parse(t, "; term\n: details")
	dl, ok := nodes[0].(DefinitionList)
	if !ok || len(dl.Items) != 2 {
		t.Fatalf("Parse = %#v, want a 2-item definition list", nodes)
	}
	if !dl.Items[0].Term || dl.Items[1].Term {
		t.Errorf("Term flags = %v, %v", dl.Items[0].Term, dl.Items[1].Term)
	}
}

func TestParseRedirect(t *testing.T) {
	nodes := parse(t, "#REDIRECT [[Main Page|label]]")
	if !reflect.DeepEqual(nodes, []Node{Redirect{Target: "Main Page"}}) {
		t.Errorf("Parse = %#v, want a redirect", nodes)
	}

	// Redirects only count at the very top of the page.
	nodes = parse(t, "text first\n#REDIRECT [[x]]")
	for _, n := range nodes {
		if _, ok := n.(Redirect); ok {
			t.Errorf("Mid-page #REDIRECT parsed as a redirect: %#v", nodes)
		}
	}
}

func TestParseEntities(t *testing.T) {
	nodes := parse(t, "a&amp;b")
	want := []Node{
		Text{Value: "a"},
		CharacterEntity{Character: '&'},
		Text{Value: "b"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}

	nodes = parse(t, "&#xe9;&#97;&unknown;")
	want = []Node{
		CharacterEntity{Character: 'é'},
		CharacterEntity{Character: 'a'},
		Text{Value: "&unknown;"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseComments(t *testing.T) {
	nodes := parse(t, "a<!-- hidden -->b")
	want := []Node{
		Text{Value: "a"},
		Comment{Text: " hidden "},
		Text{Value: "b"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseTags(t *testing.T) {
	nodes := parse(t, "<nowiki>[[x]]</nowiki>")
	want := []Node{Tag{Name: "nowiki", Body: "[[x]]"}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}

	nodes = parse(t, "<div>x</div>")
	want = []Node{
		StartTag{Name: "div"},
		Text{Value: "x"},
		EndTag{Name: "div"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseMagicWords(t *testing.T) {
	nodes := parse(t, "__NOTOC__")
	if !reflect.DeepEqual(nodes, []Node{MagicWord{Name: "NOTOC"}}) {
		t.Errorf("Parse = %#v, want a magic word", nodes)
	}

	nodes = parse(t, "__not_magic__")
	if _, ok := nodes[0].(MagicWord); ok {
		t.Errorf("Parse treated %q as magic", "__not_magic__")
	}
}

func TestParseTable(t *testing.T) {
	nodes := parse(t, "{| class=x\n|-\n| cell\n|}")
	if !reflect.DeepEqual(nodes, []Node{Table{}}) {
		t.Errorf("Parse = %#v, want a single table", nodes)
	}
}

func TestParseHorizontalDivider(t *testing.T) {
	nodes := parse(t, "a\n----\nb")
	want := []Node{
		Text{Value: "a"},
		HorizontalDivider{},
		Text{Value: "b"},
	}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Parse = %#v, want %#v", nodes, want)
	}
}

func TestParseUnclosedMarkup(t *testing.T) {
	// Broken markup degrades to text instead of failing.
	tests := []string{"[[unclosed", "{{unclosed", "{{{unclosed"}
	for _, input := range tests {
		nodes := parse(t, input)
		if len(nodes) == 0 {
			t.Errorf("Parse(%q) = no nodes", input)
		}
		if _, ok := nodes[0].(Text); !ok {
			t.Errorf("Parse(%q) = %#v, want text fallback", input, nodes)
		}
	}
}

func TestProfiles(t *testing.T) {
	src := EnglishWikipedia()
	if len(src.ExtensionTags) == 0 || len(src.Protocols) == 0 {
		t.Fatalf("English profile incomplete: %+v", src)
	}
	if !reflect.DeepEqual(src, SimpleEnglishWikipedia()) {
		t.Errorf("Simple English profile should match English for now")
	}

	cfg := NewConfiguration(src)
	out := cfg.Parse("<poem>x</poem>")
	if !reflect.DeepEqual(out.Nodes, []Node{Tag{Name: "poem", Body: "x"}}) {
		t.Errorf("poem not treated as extension tag: %#v", out.Nodes)
	}
}
