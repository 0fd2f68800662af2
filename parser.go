package wikidump

import (
	"bytes"
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-wikidump/wikitext"
)

// The fixed signature opening every bzip2 stream.
var bzMagic = []byte("BZh")

// A Parser reads Mediawiki XML dumps into Site values. Construct with
// NewParser; the option setters return the parser for chaining and are
// not safe to call while a parse is running.
type Parser struct {
	processText    bool
	removeNewlines bool
	excludePages   bool
	config         *wikitext.Configuration
}

// NewParser returns a parser with the default settings: markup
// processing enabled, newline removal disabled, non-article pages
// excluded, and the default markup dialect.
func NewParser() *Parser {
	return &Parser{
		processText:  true,
		excludePages: true,
		config:       wikitext.DefaultConfiguration(),
	}
}

// ProcessText sets whether revision markup is flattened into readable
// plain text. When disabled, Text keeps the raw markup and Raw stays
// empty. Enabled by default.
func (p *Parser) ProcessText(v bool) *Parser {
	p.processText = v
	return p
}

// RemoveNewlines sets whether newline and carriage return characters
// are stripped from processed text. Disabled by default.
func (p *Parser) RemoveNewlines(v bool) *Parser {
	p.removeNewlines = v
	return p
}

// ExcludePages sets whether pages outside the article namespace (Talk,
// User, Special and friends) are dropped. Enabled by default.
func (p *Parser) ExcludePages(v bool) *Parser {
	p.excludePages = v
	return p
}

// UseConfig selects the markup dialect to parse revisions with. For
// best results use the profile matching the site the dump came from.
func (p *Parser) UseConfig(src *wikitext.ConfigurationSource) *Parser {
	p.config = wikitext.NewConfiguration(src)
	return p
}

// ParseFile parses the dump at the given path, transparently
// decompressing bzip2 input.
func (p *Parser) ParseFile(path string) (*Site, error) {
	compressed, err := isCompressed(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		r = bzip2.NewReader(f)
	}
	return p.Parse(r)
}

// ParseString parses a dump held in memory.
func (p *Parser) ParseString(text string) (*Site, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse reads an entire dump from r and returns the materialized Site.
// I/O problems come back as ordinary errors; malformed XML or invalid
// UTF-8 also returns an error, with no partial Site either way.
func (p *Parser) Parse(r io.Reader) (*Site, error) {
	site := &Site{}
	sc := newScanner(p.excludePages, xml.NewDecoder(r), site)
	if err := sc.run(); err != nil {
		return nil, err
	}
	p.processSite(site)
	return site, nil
}

// isCompressed sniffs the first three bytes of the file on its own
// handle, leaving the main scan to reopen from the top.
func isCompressed(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 3)
	if _, err := io.ReadFull(f, buf); err != nil {
		return false, fmt.Errorf("reading signature of %v: %w", path, err)
	}
	return bytes.Equal(buf, bzMagic), nil
}

type scanState int

const (
	stOutside scanState = iota
	stSiteInfo
	stInPage
)

// A scanner walks the dump's XML token stream and accumulates pages.
// Revisions nest inside pages but need no state of their own; the
// <text> element only occurs under <revision>.
type scanner struct {
	d       *xml.Decoder
	exclude bool

	state    scanState
	site     *Site
	page     Page
	rev      PageRevision
	skipPage bool
}

func newScanner(exclude bool, d *xml.Decoder, site *Site) *scanner {
	return &scanner{d: d, exclude: exclude, site: site}
}

// run drains the dump, appending every kept page to the site.
func (s *scanner) run() error {
	for {
		page, err := s.nextPage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if page != nil {
			s.site.Pages = append(s.site.Pages, *page)
		}
	}
}

// nextPage advances to the next </page>. It returns nil for a page the
// namespace filter dropped, and io.EOF at the end of the dump.
func (s *scanner) nextPage() (*Page, error) {
	for {
		tok, err := s.d.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("reading dump: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := s.startElement(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if done, page := s.endElement(t); done {
				return page, nil
			}
		}
	}
}

func (s *scanner) startElement(e xml.StartElement) error {
	name := e.Name.Local

	switch s.state {
	case stOutside:
		switch name {
		case "siteinfo":
			s.state = stSiteInfo
		case "page":
			s.state = stInPage
		}

	case stSiteInfo:
		switch name {
		case "sitename":
			return s.readInto(&s.site.Name)
		case "base":
			return s.readInto(&s.site.URL)
		}

	case stInPage:
		if s.skipPage {
			return nil
		}
		switch name {
		case "title":
			return s.readInto(&s.page.Title)
		case "ns":
			if s.exclude {
				var ns string
				if err := s.readInto(&ns); err != nil {
					return err
				}
				if ns != "0" {
					s.skipPage = true
				}
			}
		case "text":
			return s.readInto(&s.rev.Text)
		}
	}
	return nil
}

// endElement reports whether a page element just closed, and the page
// if it was kept.
func (s *scanner) endElement(e xml.EndElement) (bool, *Page) {
	switch e.Name.Local {
	case "siteinfo":
		if s.state == stSiteInfo {
			s.state = stOutside
		}
	case "revision":
		if s.state == stInPage && !s.skipPage {
			s.page.Revisions = append(s.page.Revisions, s.rev)
			s.rev.reset()
		}
	case "page":
		if s.state != stInPage {
			break
		}
		s.state = stOutside
		var page *Page
		if !s.skipPage {
			page = &Page{Title: s.page.Title, Revisions: s.page.Revisions}
		}
		s.page.reset()
		s.skipPage = false
		return true, page
	}
	return false, nil
}

// readInto captures the character data of the element just opened,
// consuming through its matching end tag.
func (s *scanner) readInto(dst *string) error {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := s.d.Token()
		if err != nil {
			return fmt.Errorf("reading element text: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 1 {
				sb.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	*dst = sb.String()
	return nil
}

// header consumes tokens up to the end of <siteinfo> (or the first
// <page> for dumps without one), so streaming callers can see the site
// metadata before pulling pages.
func (s *scanner) header() error {
	for {
		tok, err := s.d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading dump: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := s.startElement(t); err != nil {
				return err
			}
			if s.state == stInPage {
				return nil
			}
		case xml.EndElement:
			s.endElement(t)
			if t.Name.Local == "siteinfo" {
				return nil
			}
		}
	}
}
