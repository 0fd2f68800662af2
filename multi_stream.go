package wikidump

import (
	"compress/bzip2"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
)

type streamChunk struct {
	offset int64
	count  int
}

// An IndexedStream reads a multistream dump through its index file,
// fanning bzip2 stream decoding out over several workers. Pages come
// back in completion order, not dump order.
type IndexedStream struct {
	p     *Parser
	pages chan *Page

	mu  sync.Mutex
	err error
}

// NewIndexedStream opens a multistream dump (datafn) plus its index
// (indexfn, bzip2-compressed or plain) and starts the given number of
// decoding workers.
func (p *Parser) NewIndexedStream(indexfn, datafn string, workers int) (*IndexedStream, error) {
	// Fail early on an unreadable data file rather than in a worker.
	f, err := os.Open(datafn)
	if err != nil {
		return nil, err
	}
	f.Close()

	isr, err := openIndexSummary(indexfn)
	if err != nil {
		return nil, err
	}

	is := &IndexedStream{
		p:     p,
		pages: make(chan *Page, 1000),
	}
	chunks := make(chan streamChunk, 1000)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go is.chunkWorker(datafn, chunks, &wg)
	}

	go func() {
		defer close(chunks)
		for {
			offset, count, err := isr.Next()
			chunks <- streamChunk{offset, count}
			if err == io.EOF {
				return
			}
			if err != nil {
				is.fail(fmt.Errorf("reading index: %w", err))
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(is.pages)
	}()

	return is, nil
}

func openIndexSummary(indexfn string) (*IndexSummaryReader, error) {
	compressed, err := isCompressed(indexfn)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(indexfn)
	if err != nil {
		return nil, err
	}
	// The file stays open for the lifetime of the index goroutine;
	// it is small and the process-exit close is fine for the tools
	// this serves.
	var r io.Reader = f
	if compressed {
		r = bzip2.NewReader(f)
	}
	return NewIndexSummaryReader(r)
}

func (is *IndexedStream) chunkWorker(datafn string, chunks <-chan streamChunk, wg *sync.WaitGroup) {
	defer wg.Done()

	// On failure, keep draining chunks so the index goroutine never
	// blocks on a send nobody will receive.
	f, err := os.Open(datafn)
	if err != nil {
		is.fail(err)
		for range chunks {
		}
		return
	}
	defer f.Close()

	for c := range chunks {
		if is.failed() {
			continue
		}
		if _, err := f.Seek(c.offset, io.SeekStart); err != nil {
			is.fail(fmt.Errorf("seeking to %v: %w", c.offset, err))
			continue
		}

		sc := newScanner(is.p.excludePages, xml.NewDecoder(bzip2.NewReader(f)), &Site{})
		for i := 0; i < c.count; i++ {
			page, err := sc.nextPage()
			if err == io.EOF {
				break
			}
			if err != nil {
				is.fail(err)
				break
			}
			if page == nil {
				continue
			}
			for j := range page.Revisions {
				is.p.processRevision(&page.Revisions[j])
			}
			is.pages <- page
		}
	}
}

func (is *IndexedStream) fail(err error) {
	is.mu.Lock()
	if is.err == nil {
		is.err = err
	}
	is.mu.Unlock()
}

func (is *IndexedStream) failed() bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.err != nil
}

// SiteName and SiteURL are empty for indexed streams; multistream
// chunks carry no <siteinfo> header.
func (is *IndexedStream) SiteName() string { return "" }
func (is *IndexedStream) SiteURL() string  { return "" }

// Next returns the next page, io.EOF after the last chunk drains, or
// the first worker error.
func (is *IndexedStream) Next() (*Page, error) {
	page, ok := <-is.pages
	if !ok {
		is.mu.Lock()
		defer is.mu.Unlock()
		if is.err != nil {
			return nil, is.err
		}
		return nil, io.EOF
	}
	return page, nil
}
