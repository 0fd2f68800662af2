// Load a wikipedia dump into CouchDB
package main

import (
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"github.com/dustin/go-wikidump/wikitext"
	"github.com/dustin/httputil"
)

var wg sync.WaitGroup

type Geo struct {
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Type string `json:"type"`
}

type Article struct {
	ID    string   `json:"_id"`
	Rev   string   `json:"_rev"`
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Geo   *Geo     `json:"geo,omitempty"`
	Files []string `json:"files,omitempty"`
	Links []string `json:"links,omitempty"`
}

func escapeTitle(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

// resolveConflict replaces the stored copy. Dumps are point-in-time
// snapshots, so whatever we're loading now is the freshest we have.
func resolveConflict(db *couch.Database, a *Article) {
	log.Printf("Resolving conflict on %s", a.ID)
	var prev Article
	err := db.Retrieve(a.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", a.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", a.ID)
		return
	}
	if _, err = db.EditWith(a, a.ID, prev.Rev); err != nil {
		log.Printf("  Error updating %v: %v", a.ID, err)
	}
}

func doPage(db *couch.Database, p *wikidump.Page) {
	defer wg.Done()
	if len(p.Revisions) == 0 {
		return
	}
	latest := p.Revisions[len(p.Revisions)-1]

	article := Article{
		ID:    escapeTitle(p.Title),
		Title: p.Title,
		Text:  latest.Text,
		Files: wikidump.FindFiles(latest.Raw),
		Links: wikidump.FindLinks(latest.Raw),
	}
	if gl, err := wikidump.ParseCoords(latest.Raw); err == nil {
		article.Geo = &Geo{Type: "Feature"}
		article.Geo.Geometry.Type = "Point"
		article.Geo.Geometry.Coordinates = []float64{gl.Lon, gl.Lat}
	}

	_, _, err := db.Insert(&article)
	switch {
	case err == nil:
		// yay
	case httputil.IsHTTPStatus(err, 409):
		resolveConflict(db, &article)
	default:
		log.Printf("Error inserting %v: %v", article.ID, err)
	}
}

func pageHandler(db couch.Database, ch <-chan *wikidump.Page) {
	for p := range ch {
		doPage(&db, p)
	}
}

func main() {
	if len(os.Args) < 4 {
		log.Fatalf("Usage: %s couchurl index.bz2 dump.xml.bz2", os.Args[0])
	}
	dburl, idx, file := os.Args[1], os.Args[2], os.Args[3]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	parser := wikidump.NewParser().UseConfig(wikitext.EnglishWikipedia())
	src, err := parser.NewIndexedStream(idx, file, runtime.GOMAXPROCS(0))
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}

	ch := make(chan *wikidump.Page, 1000)

	for i := 0; i < 20; i++ {
		go pageHandler(db, ch)
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
