package wikitext

// A Node is one element of parsed wiki text. The set of kinds is closed;
// consumers are expected to type-switch over it.
type Node interface {
	node()
}

// Text is a literal run of characters.
type Text struct {
	Value string
}

// ParagraphBreak separates two paragraphs. Any run of blank lines
// produces a single break.
type ParagraphBreak struct{}

// CharacterEntity is a decoded HTML entity such as &amp; or &#233;.
type CharacterEntity struct {
	Character rune
}

// Link is an internal wiki link. Text holds the display nodes; for a
// bare [[Target]] link the display is the target itself.
type Link struct {
	Target string
	Text   []Node
}

// ExternalLink is a bracketed external link. Nodes holds the label
// only; a bare URL has no label nodes at all.
type ExternalLink struct {
	Target string
	Nodes  []Node
}

// Heading is a == section heading == of the given level.
type Heading struct {
	Level int
	Nodes []Node
}

// Image is a file/image inclusion. Text holds the caption and option
// nodes as written, undifferentiated.
type Image struct {
	Target string
	Text   []Node
}

// ListItem is one item of an ordered or unordered list.
type ListItem struct {
	Nodes []Node
}

// OrderedList is a # list.
type OrderedList struct {
	Items []ListItem
}

// UnorderedList is a * list.
type UnorderedList struct {
	Items []ListItem
}

// DefinitionListItem is one ; term or : details line.
type DefinitionListItem struct {
	Term  bool
	Nodes []Node
}

// DefinitionList is a run of ; and : lines.
type DefinitionList struct {
	Items []DefinitionListItem
}

// Preformatted is a block of space-indented lines.
type Preformatted struct {
	Nodes []Node
}

// Template is a {{transclusion}}. Parameters are kept as raw text.
type Template struct {
	Name       string
	Parameters []string
}

// Parameter is a {{{template parameter}}}.
type Parameter struct {
	Name string
}

// Bold, Italic and BoldItalic are ''' / '' / ''''' toggle markers.
type Bold struct{}
type Italic struct{}
type BoldItalic struct{}

// HorizontalDivider is a ---- rule.
type HorizontalDivider struct{}

// MagicWord is a recognized __BEHAVIORSWITCH__.
type MagicWord struct {
	Name string
}

// Redirect is a #REDIRECT directive at the top of a page.
type Redirect struct {
	Target string
}

// Comment is an HTML <!-- comment -->.
type Comment struct {
	Text string
}

// Tag is an extension tag such as <ref> or <nowiki>, body included.
type Tag struct {
	Name string
	Body string
}

// StartTag and EndTag are generic HTML tags the parser passes through
// without interpreting.
type StartTag struct {
	Name string
}
type EndTag struct {
	Name string
}

// Category is a [[Category:...]] declaration.
type Category struct {
	Target string
}

// Table is a {| ... |} block, swallowed whole.
type Table struct{}

func (Text) node()              {}
func (ParagraphBreak) node()    {}
func (CharacterEntity) node()   {}
func (Link) node()              {}
func (ExternalLink) node()      {}
func (Heading) node()           {}
func (Image) node()             {}
func (OrderedList) node()       {}
func (UnorderedList) node()     {}
func (DefinitionList) node()    {}
func (Preformatted) node()      {}
func (Template) node()          {}
func (Parameter) node()         {}
func (Bold) node()              {}
func (Italic) node()            {}
func (BoldItalic) node()        {}
func (HorizontalDivider) node() {}
func (MagicWord) node()         {}
func (Redirect) node()          {}
func (Comment) node()           {}
func (Tag) node()               {}
func (StartTag) node()          {}
func (EndTag) node()            {}
func (Category) node()          {}
func (Table) node()             {}
