// POST flattened articles from a dump to an arbitrary HTTP endpoint.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"github.com/dustin/go-wikidump/wikitext"
	"github.com/dustin/httputil"
)

var (
	numWorkers = flag.Int("workers", 4, "Number of upload workers")
	dumpFile   = flag.String("file", "", "The dump file (plain or bz2).")
	endpoint   = flag.String("url", "http://localhost:8080/articles", "Endpoint to POST articles to")
)

var wg sync.WaitGroup

type article struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Links []string `json:"links,omitempty"`
	Files []string `json:"files,omitempty"`
}

func postArticle(client *http.Client, a *article) error {
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}
	res, err := client.Post(*endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return httputil.HTTPError(res)
	}
	return nil
}

func pageHandler(ch <-chan *wikidump.Page) {
	client := &http.Client{Timeout: time.Minute}
	for p := range ch {
		if len(p.Revisions) > 0 {
			latest := p.Revisions[len(p.Revisions)-1]
			a := &article{
				Title: p.Title,
				Text:  latest.Text,
				Links: wikidump.FindLinks(latest.Raw),
				Files: wikidump.FindFiles(latest.Raw),
			}
			if err := postArticle(client, a); err != nil {
				log.Printf("Error posting %q: %v", p.Title, err)
			}
		}
		wg.Done()
	}
}

func main() {
	flag.Parse()
	if *dumpFile == "" {
		log.Fatal("You must supply a dump file.")
	}

	parser := wikidump.NewParser().UseConfig(wikitext.EnglishWikipedia())
	src, err := parser.StreamFile(*dumpFile)
	if err != nil {
		log.Fatalf("Error setting up dump stream:  %v", err)
	}

	log.Printf("Site: %q (%v)", src.SiteName(), src.SiteURL())

	ch := make(chan *wikidump.Page, 1000)
	for i := 0; i < *numWorkers; i++ {
		go pageHandler(ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
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
	log.Printf("Ended with err after %v:  %v after %s pages",
		time.Since(start), err, humanize.Comma(pages))
}
