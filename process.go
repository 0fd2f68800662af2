package wikidump

import (
	"runtime"
	"strings"
	"sync"
)

// processSite post-processes every revision of every page. The nested
// pages/revisions structure is flattened into one worklist first, then
// fanned out over a fixed pool; cells are disjoint, so order doesn't
// matter and the workers share nothing but the read-only config.
func (p *Parser) processSite(site *Site) {
	var work []*PageRevision
	for i := range site.Pages {
		pg := &site.Pages[i]
		for j := range pg.Revisions {
			work = append(work, &pg.Revisions[j])
		}
	}
	if len(work) == 0 {
		return
	}

	ch := make(chan *PageRevision, 1000)
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range ch {
				p.processRevision(r)
			}
		}()
	}

	for _, r := range work {
		ch <- r
	}
	close(ch)
	wg.Wait()
}

// processRevision applies the configured text handling to a single
// revision in place.
func (p *Parser) processRevision(r *PageRevision) {
	if p.processText {
		parsed := p.config.Parse(r.Text)
		r.Raw = r.Text
		// The markup parser can leak literal \t escape sequences;
		// drop them from the flattened output.
		r.Text = strings.ReplaceAll(textFromNodes(parsed.Nodes), `\t`, "")
	}

	if p.removeNewlines {
		r.Text = strings.ReplaceAll(r.Text, "\n", "")
		r.Text = strings.ReplaceAll(r.Text, "\r", "")
	}

	r.Text = strings.TrimSpace(r.Text)
}
