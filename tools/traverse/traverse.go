// Walk a dump, flattening every revision, and report throughput.
package main

import (
	"encoding/gob"
	"flag"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"github.com/dustin/go-wikidump/wikitext"
)

var (
	numWorkers  = flag.Int("workers", 8, "Number of page workers")
	parseCoords = flag.Bool("parseCoords", false, "Try to parse geo data while traversing")
	processText = flag.Bool("process", true, "Flatten wiki markup into plain text")
)

var wg, errwg sync.WaitGroup

func pageCoords(p *wikidump.Page, cherr chan<- *wikidump.Page) {
	_, err := wikidump.ParseCoords(rawText(p))
	if err != nil && err != wikidump.ErrNoCoord {
		cherr <- p
		log.Printf("Error parsing geo from %q: %v", p.Title, err)
	}
}

// rawText is the unprocessed markup of the page's first revision,
// whichever field it ended up in.
func rawText(p *wikidump.Page) string {
	if len(p.Revisions) == 0 {
		return ""
	}
	if p.Revisions[0].Raw != "" {
		return p.Revisions[0].Raw
	}
	return p.Revisions[0].Text
}

func pageHandler(ch <-chan *wikidump.Page, cherr chan<- *wikidump.Page) {
	for p := range ch {
		if *parseCoords {
			pageCoords(p, cherr)
		}
		wg.Done()
	}
}

func errorHandler(ch <-chan *wikidump.Page) {
	defer errwg.Done()
	f, err := os.Create("errors.gob")
	if err != nil {
		log.Fatalf("Error creating error file: %v", err)
	}
	defer f.Close()
	g := gob.NewEncoder(f)

	for p := range ch {
		if err := g.Encode(p); err != nil {
			log.Fatalf("Error gobbing page: %v\n%#v", err, p)
		}
	}
}

func process(src wikidump.PageSource) {
	log.Printf("Site: %q (%v)", src.SiteName(), src.SiteURL())

	ch := make(chan *wikidump.Page, 1000)
	cherr := make(chan *wikidump.Page, 10)

	for i := 0; i < *numWorkers; i++ {
		go pageHandler(ch, cherr)
	}

	errwg.Add(1)
	go errorHandler(cherr)

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	var err error
	for err == nil {
		var page *wikidump.Page
		page, err = src.Next()
		if err == nil {
			wg.Add(1)
			ch <- page
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	wg.Wait()
	close(ch)
	close(cherr)
	errwg.Wait()
	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
}

func main() {
	cpus := flag.Int("cpus", runtime.GOMAXPROCS(0), "Number of CPUS to utilize")
	flag.Parse()

	runtime.GOMAXPROCS(*cpus)

	parser := wikidump.NewParser().
		ProcessText(*processText).
		UseConfig(wikitext.EnglishWikipedia())

	switch flag.NArg() {
	case 1:
		src, err := parser.StreamFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("Error opening dump: %v", err)
		}
		process(src)
	case 2:
		src, err := parser.NewIndexedStream(flag.Arg(0), flag.Arg(1),
			runtime.GOMAXPROCS(0))
		if err != nil {
			log.Fatalf("Error initializing multistream parser: %v", err)
		}
		process(src)
	default:
		log.Fatalf("Need either a single stream dump, or index and multi-stream")
	}
}
