// Load a wikipedia dump into ElasticSearch
package main

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"github.com/dustin/go-wikidump/wikitext"
)

var wg = sync.WaitGroup{}

func pageHandler(u string, ch chan *wikidump.Page) {
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for p := range ch {
		counter++
		if counter > 1000 {
			bulkLoader.SendBatch()
			counter = 0
		}
		if len(p.Revisions) == 0 {
			wg.Done()
			continue
		}
		latest := p.Revisions[len(p.Revisions)-1]
		ui := elasticsearch.UpdateInstruction{
			Id:    p.Title,
			Index: "wikidump",
			Type:  "article",
			Body: map[string]interface{}{
				"title": p.Title,
				"text":  latest.Text,
				"links": wikidump.FindLinks(latest.Raw),
			},
		}
		bulkLoader.Update(&ui)
		wg.Done()
	}
	bulkLoader.Quit()
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s dump.xml.bz2 http://localhost:9200/", os.Args[0])
	}
	filename, esurl := os.Args[1], os.Args[2]

	parser := wikidump.NewParser().UseConfig(wikitext.EnglishWikipedia())
	src, err := parser.StreamFile(filename)
	if err != nil {
		log.Fatalf("Error setting up dump stream:  %v", err)
	}

	log.Printf("Site: %q (%v)", src.SiteName(), src.SiteURL())

	ch := make(chan *wikidump.Page, 1000)

	for i := 0; i < 4; i++ {
		go pageHandler(esurl, ch)
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
