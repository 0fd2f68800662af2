package wikidump

import (
	"strings"

	"github.com/dustin/go-wikidump/wikitext"
)

// textFromNodes flattens a markup node tree into plain text. It never
// fails: node kinds with no plain-text rendering simply contribute
// nothing.
func textFromNodes(nodes []wikitext.Node) string {
	var sb strings.Builder
	sb.Grow(64 + 64*len(nodes))
	writeNodes(&sb, nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []wikitext.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case wikitext.Text:
			sb.WriteString(n.Value)
		case wikitext.ParagraphBreak:
			sb.WriteByte('\n')
		case wikitext.CharacterEntity:
			sb.WriteRune(n.Character)
		case wikitext.Link:
			// Display text only; the bare target adds nothing readable.
			writeNodes(sb, n.Text)
		case wikitext.ExternalLink:
			writeNodes(sb, n.Nodes)
		case wikitext.Heading:
			sb.WriteByte('\n')
			writeNodes(sb, n.Nodes)
			sb.WriteByte('\n')
		case wikitext.Image:
			// Skipped: caption text and image options can't be told
			// apart reliably.
		case wikitext.OrderedList:
			for _, item := range n.Items {
				writeNodes(sb, item.Nodes)
			}
		case wikitext.UnorderedList:
			for _, item := range n.Items {
				writeNodes(sb, item.Nodes)
			}
		case wikitext.DefinitionList:
			for _, item := range n.Items {
				writeNodes(sb, item.Nodes)
			}
		case wikitext.Preformatted:
			writeNodes(sb, n.Nodes)
		default:
			// Templates, formatting toggles, tables, tags, comments,
			// magic words, redirects, parameters, categories.
		}
	}
}
