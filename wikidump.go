package wikidump

// A Site is one Mediawiki website as described by a dump: its name,
// base URL, and every page the dump (and the namespace filter) kept,
// in dump order.
type Site struct {
	Name  string
	URL   string
	Pages []Page
}

// A Page is a single wiki page with its revisions in dump order
// (oldest first, the dump's chronological order).
type Page struct {
	Title     string
	Revisions []PageRevision
}

// A PageRevision is one revision of a page. Text is the revision
// content, flattened to plain text when processing is enabled. Raw
// preserves the original markup verbatim whenever Text was processed;
// otherwise it is empty.
type PageRevision struct {
	Text string
	Raw  string
}

// reset clears a page accumulator for reuse. The revisions slice is
// dropped rather than truncated since the old backing array now
// belongs to the appended page.
func (p *Page) reset() {
	p.Title = ""
	p.Revisions = nil
}

// reset clears a revision accumulator for reuse.
func (r *PageRevision) reset() {
	r.Text = ""
	r.Raw = ""
}
