package wikidump

import (
	"compress/bzip2"
	"encoding/xml"
	"io"
	"os"
)

// A PageSource yields dump pages one at a time; both single-stream
// and indexed multistream readers satisfy it.
type PageSource interface {
	Next() (*Page, error)
	SiteName() string
	SiteURL() string
}

// A Stream yields one post-processed page at a time, for dumps too
// large to materialize as a whole Site.
type Stream struct {
	p      *Parser
	sc     *scanner
	site   Site
	closer io.Closer
}

// NewStream starts an incremental parse of the dump in r. The site
// metadata is read before returning.
func (p *Parser) NewStream(r io.Reader) (*Stream, error) {
	s := &Stream{p: p}
	s.sc = newScanner(p.excludePages, xml.NewDecoder(r), &s.site)
	if err := s.sc.header(); err != nil {
		return nil, err
	}
	return s, nil
}

// StreamFile starts an incremental parse of the dump at path,
// transparently decompressing bzip2 input. The file stays open until
// the stream is drained; it is closed on io.EOF from Next.
func (p *Parser) StreamFile(path string) (*Stream, error) {
	compressed, err := isCompressed(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	if compressed {
		r = bzip2.NewReader(f)
	}
	s, err := p.NewStream(r)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// SiteName is the dump's <sitename>.
func (s *Stream) SiteName() string { return s.site.Name }

// SiteURL is the dump's <base> URL.
func (s *Stream) SiteURL() string { return s.site.URL }

// Next returns the next kept page with its revisions post-processed
// per the parser's configuration. io.EOF marks a clean end of dump.
func (s *Stream) Next() (*Page, error) {
	for {
		page, err := s.sc.nextPage()
		if err != nil {
			if err == io.EOF && s.closer != nil {
				s.closer.Close()
				s.closer = nil
			}
			return nil, err
		}
		if page == nil {
			continue
		}
		for i := range page.Revisions {
			s.p.processRevision(&page.Revisions[i])
		}
		return page, nil
	}
}
