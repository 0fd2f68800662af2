package wikitext

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Output is the parse result for one piece of wiki text.
type Output struct {
	Nodes []Node
}

// Parse parses wiki text into a node tree. Parsing never fails;
// markup the parser can't interpret comes back as literal text.
func (c *Configuration) Parse(text string) Output {
	p := &parser{cfg: c}
	return Output{Nodes: p.parseBlocks(text)}
}

type parser struct {
	cfg *Configuration
}

// parseBlocks runs the line-oriented pass: headings, lists, tables,
// preformatted blocks and paragraph grouping. Inline markup within each
// block is handled by parseInline.
func (p *parser) parseBlocks(text string) []Node {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	var nodes []Node
	var para []string
	pendingBreak := false

	emit := func(ns ...Node) {
		if pendingBreak && len(nodes) > 0 {
			nodes = append(nodes, ParagraphBreak{})
		}
		pendingBreak = false
		nodes = append(nodes, ns...)
	}
	flushPara := func() {
		if len(para) > 0 {
			emit(p.parseInline(strings.Join(para, "\n"))...)
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			flushPara()
			pendingBreak = true
			continue
		}

		if len(nodes) == 0 && len(para) == 0 {
			if r, ok := p.parseRedirect(line); ok {
				emit(r)
				continue
			}
		}

		switch {
		case strings.HasPrefix(line, "{|"):
			flushPara()
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "|}") {
				i++
			}
			emit(Table{})

		case strings.HasPrefix(line, "----"):
			flushPara()
			emit(HorizontalDivider{})

		case line[0] == '=':
			if level, content, ok := splitHeading(line); ok {
				flushPara()
				emit(Heading{Level: level, Nodes: p.parseInline(content)})
			} else {
				para = append(para, line)
			}

		case line[0] == '*' || line[0] == '#':
			flushPara()
			marker := line[0]
			var items []ListItem
			for i < len(lines) && len(lines[i]) > 0 && lines[i][0] == marker {
				content := strings.TrimLeft(lines[i], "*#")
				items = append(items, ListItem{Nodes: p.parseInline(strings.TrimSpace(content))})
				i++
			}
			i--
			if marker == '#' {
				emit(OrderedList{Items: items})
			} else {
				emit(UnorderedList{Items: items})
			}

		case line[0] == ';' || line[0] == ':':
			flushPara()
			var items []DefinitionListItem
			for i < len(lines) && len(lines[i]) > 0 && (lines[i][0] == ';' || lines[i][0] == ':') {
				content := strings.TrimLeft(lines[i], ";:")
				items = append(items, DefinitionListItem{
					Term:  lines[i][0] == ';',
					Nodes: p.parseInline(strings.TrimSpace(content)),
				})
				i++
			}
			i--
			emit(DefinitionList{Items: items})

		case line[0] == ' ':
			flushPara()
			var pre []string
			for i < len(lines) && len(lines[i]) > 0 && lines[i][0] == ' ' {
				pre = append(pre, lines[i][1:])
				i++
			}
			i--
			emit(Preformatted{Nodes: p.parseInline(strings.Join(pre, "\n"))})

		default:
			para = append(para, line)
		}
	}
	flushPara()

	return nodes
}

// parseRedirect recognizes a #REDIRECT [[Target]] directive using the
// dialect's redirect magic words.
func (p *parser) parseRedirect(line string) (Redirect, bool) {
	if len(line) == 0 || line[0] != '#' {
		return Redirect{}, false
	}
	rest := line[1:]
	end := 0
	for end < len(rest) && isWordByte(rest[end]) {
		end++
	}
	if end == 0 || !p.cfg.isRedirect(rest[:end]) {
		return Redirect{}, false
	}
	open := strings.Index(rest, "[[")
	if open < 0 {
		return Redirect{}, false
	}
	closer := strings.Index(rest[open:], "]]")
	if closer < 0 {
		return Redirect{}, false
	}
	target := rest[open+2 : open+closer]
	if pipe := strings.IndexByte(target, '|'); pipe >= 0 {
		target = target[:pipe]
	}
	return Redirect{Target: strings.TrimSpace(target)}, true
}

func isWordByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// splitHeading matches = Heading = through ====== Heading ======.
func splitHeading(line string) (level int, content string, ok bool) {
	trimmed := strings.TrimRight(line, " \t")
	for level < len(trimmed) && trimmed[level] == '=' {
		level++
	}
	if level == 0 || level > 6 || level >= len(trimmed) {
		return 0, "", false
	}
	if trimmed[len(trimmed)-1] != '=' {
		return 0, "", false
	}
	end := len(trimmed)
	for end > level && trimmed[end-1] == '=' {
		end--
	}
	if end <= level {
		return 0, "", false
	}
	content = strings.TrimSpace(trimmed[level:end])
	if content == "" {
		return 0, "", false
	}
	return level, content, true
}

// parseInline scans a block's text for inline markup, coalescing plain
// character runs into single Text nodes.
func (p *parser) parseInline(s string) []Node {
	var nodes []Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Text{Value: text.String()})
			text.Reset()
		}
	}
	add := func(n Node) {
		flush()
		nodes = append(nodes, n)
	}

	i := 0
	for i < len(s) {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				add(Comment{Text: rest[4:]})
				i = len(s)
			} else {
				add(Comment{Text: rest[4 : 4+end]})
				i += 4 + end + 3
			}

		case strings.HasPrefix(rest, "[["):
			inner, length, ok := balanced(rest, "[[", "]]")
			if !ok {
				text.WriteString("[[")
				i += 2
				break
			}
			n := p.parseLink(inner)
			i += length
			if link, isLink := n.(Link); isLink {
				// Absorb the link trail: [[run]]ning renders "running".
				start := i
				for i < len(s) {
					r, size := utf8.DecodeRuneInString(s[i:])
					if !p.cfg.linkTrail[r] {
						break
					}
					i += size
				}
				if i > start {
					link.Text = append(link.Text, Text{Value: s[start:i]})
				}
				add(link)
			} else {
				add(n)
			}

		case strings.HasPrefix(rest, "{{{"):
			end := strings.Index(rest[3:], "}}}")
			if end < 0 {
				text.WriteString("{{{")
				i += 3
				break
			}
			add(Parameter{Name: strings.TrimSpace(rest[3 : 3+end])})
			i += 3 + end + 3

		case strings.HasPrefix(rest, "{{"):
			inner, length, ok := balanced(rest, "{{", "}}")
			if !ok {
				text.WriteString("{{")
				i += 2
				break
			}
			parts := splitTopLevel(inner, '|')
			t := Template{Name: strings.TrimSpace(parts[0])}
			if len(parts) > 1 {
				t.Parameters = parts[1:]
			}
			add(t)
			i += length

		case rest[0] == '[' && p.cfg.hasProtocol(rest[1:]):
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				text.WriteByte('[')
				i++
				break
			}
			inner := rest[1:end]
			target, label := inner, ""
			if sp := strings.IndexByte(inner, ' '); sp >= 0 {
				target, label = inner[:sp], inner[sp+1:]
			}
			add(ExternalLink{Target: target, Nodes: p.parseInline(label)})
			i += end + 1

		case strings.HasPrefix(rest, "'''''"):
			add(BoldItalic{})
			i += 5

		case strings.HasPrefix(rest, "'''"):
			add(Bold{})
			i += 3

		case strings.HasPrefix(rest, "''"):
			add(Italic{})
			i += 2

		case strings.HasPrefix(rest, "__"):
			end := strings.Index(rest[2:], "__")
			if end >= 0 && p.cfg.isMagicWord(rest[2:2+end]) {
				add(MagicWord{Name: rest[2 : 2+end]})
				i += 2 + end + 2
			} else {
				text.WriteString("__")
				i += 2
			}

		case rest[0] == '&':
			if r, length, ok := decodeEntity(rest); ok {
				add(CharacterEntity{Character: r})
				i += length
			} else {
				text.WriteByte('&')
				i++
			}

		case rest[0] == '<':
			n, length, ok := p.parseTag(rest)
			if !ok {
				text.WriteByte('<')
				i++
				break
			}
			add(n)
			i += length

		default:
			text.WriteByte(rest[0])
			i++
		}
	}
	flush()

	return nodes
}

// parseLink classifies the inside of a [[...]] bracket pair as a
// category declaration, a file inclusion, or an ordinary link.
func (p *parser) parseLink(inner string) Node {
	parts := splitTopLevel(inner, '|')
	target := strings.TrimSpace(parts[0])

	// [[:Category:X]] is an escaped literal link to the category page.
	escaped := strings.HasPrefix(target, ":")
	if escaped {
		target = strings.TrimPrefix(target, ":")
	}

	if colon := strings.IndexByte(target, ':'); colon >= 0 && !escaped {
		ns := target[:colon]
		switch {
		case p.cfg.isCategoryNamespace(ns):
			return Category{Target: target}
		case p.cfg.isFileNamespace(ns):
			img := Image{Target: target}
			if len(parts) > 1 {
				img.Text = p.parseInline(strings.Join(parts[1:], "|"))
			}
			return img
		}
	}

	link := Link{Target: target}
	if len(parts) > 1 {
		link.Text = p.parseInline(strings.Join(parts[1:], "|"))
	} else {
		link.Text = []Node{Text{Value: target}}
	}
	return link
}

// parseTag handles <tag>, </tag> and <tag/> at the start of s. Extension
// tags swallow their body verbatim; anything else becomes a generic
// start or end marker.
func (p *parser) parseTag(s string) (Node, int, bool) {
	if len(s) < 2 {
		return nil, 0, false
	}
	closing := s[1] == '/'
	nameStart := 1
	if closing {
		nameStart = 2
	}
	nameEnd := nameStart
	for nameEnd < len(s) && (isWordByte(s[nameEnd]) || s[nameEnd] >= '0' && s[nameEnd] <= '9') {
		nameEnd++
	}
	if nameEnd == nameStart {
		return nil, 0, false
	}
	gt := strings.IndexByte(s, '>')
	if gt < 0 {
		return nil, 0, false
	}
	name := strings.ToLower(s[nameStart:nameEnd])

	if closing {
		return EndTag{Name: name}, gt + 1, true
	}
	selfClosing := gt > 0 && s[gt-1] == '/'

	if p.cfg.isExtensionTag(name) {
		if selfClosing {
			return Tag{Name: name}, gt + 1, true
		}
		closer := "</" + name + ">"
		if end := strings.Index(strings.ToLower(s[gt+1:]), closer); end >= 0 {
			body := s[gt+1 : gt+1+end]
			return Tag{Name: name, Body: body}, gt + 1 + end + len(closer), true
		}
		// Unterminated extension tag eats the rest of the block.
		return Tag{Name: name, Body: s[gt+1:]}, len(s), true
	}

	return StartTag{Name: name}, gt + 1, true
}

// balanced extracts the contents of a bracket pair starting at s[0],
// honoring nesting of the same pair. Returns the inner text and the
// total length consumed.
func balanced(s, open, close string) (inner string, length int, ok bool) {
	depth := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], open):
			depth++
			i += len(open)
		case strings.HasPrefix(s[i:], close):
			depth--
			i += len(close)
			if depth == 0 {
				return s[len(open) : i-len(close)], i, true
			}
		default:
			i++
		}
	}
	return "", 0, false
}

// splitTopLevel splits on sep, ignoring separators nested inside
// [[...]] or {{...}} pairs.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "[[") || strings.HasPrefix(s[i:], "{{"):
			depth++
			i++
		case strings.HasPrefix(s[i:], "]]") || strings.HasPrefix(s[i:], "}}"):
			depth--
			i++
		case s[i] == sep && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

var namedEntities = map[string]rune{
	"amp":    '&',
	"apos":   '\'',
	"copy":   '©',
	"deg":    '°',
	"gt":     '>',
	"hellip": '…',
	"laquo":  '«',
	"lt":     '<',
	"mdash":  '—',
	"middot": '·',
	"nbsp":   ' ',
	"ndash":  '–',
	"quot":   '"',
	"raquo":  '»',
	"sect":   '§',
	"times":  '×',
}

// decodeEntity decodes &name;, &#nnn; and &#xhh; at the start of s.
func decodeEntity(s string) (rune, int, bool) {
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 12 {
		return 0, 0, false
	}
	body := s[1:end]
	if body[0] == '#' {
		num := body[1:]
		base := 10
		if len(num) > 1 && (num[0] == 'x' || num[0] == 'X') {
			num, base = num[1:], 16
		}
		v, err := strconv.ParseInt(num, base, 32)
		if err != nil || !unicode.IsGraphic(rune(v)) && rune(v) != '\n' {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if r, ok := namedEntities[body]; ok {
		return r, end + 1, true
	}
	return 0, 0, false
}
