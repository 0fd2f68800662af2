// Load a wikipedia dump into MongoDB
package main

import (
	"flag"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"github.com/dustin/go-wikidump/wikitext"
	"gopkg.in/mgo.v2"
)

var (
	proc       = flag.Int("proc", 8, "How many processes to run.")
	file       = flag.String("file", "", "The dump file (plain or bz2).")
	cpus       = flag.Int("cpus", runtime.NumCPU(), "Number of CPUs to use.")
	dburl      = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
	verbose    = flag.Bool("v", false, "Verbose logging?")
	collection = flag.String("collection", "articles", "The collection to store dumped articles in.")
	dbname     = flag.String("dbname", "wp", "The database name to use.")
)

var wg sync.WaitGroup

// Titles are unique since the title is the URL path in wikimedia:
// My Title => My_Title
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type article struct {
	Title string   `bson:",omitempty"`
	Text  string   `bson:",omitempty"`
	Raw   string   `bson:",omitempty"`
	Files []string `bson:",omitempty"`
	Links []string `bson:",omitempty"`
}

func pageHandler(db *mgo.Database, ch <-chan *wikidump.Page) {
	for p := range ch {
		makeArticle(db, p)
	}
}

func makeArticle(db *mgo.Database, p *wikidump.Page) {
	defer wg.Done()
	if len(p.Revisions) == 0 {
		return
	}
	latest := p.Revisions[len(p.Revisions)-1]

	a := article{
		Title: p.Title,
		Text:  latest.Text,
		Raw:   latest.Raw,
		Links: wikidump.FindLinks(latest.Raw),
		Files: wikidump.FindFiles(latest.Raw),
	}
	if err := db.C(*collection).Insert(&a); err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", a.Title)
			}
		} else {
			log.Printf("Error inserting %s: %s", a.Title, err)
		}
	}
}

func processDump(src wikidump.PageSource, db *mgo.Database) {
	ch := make(chan *wikidump.Page, 1000)
	for i := 0; i < *proc; i++ {
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
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
			log.Printf("Processed %s pages total (%.2f/s)\n",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	wg.Wait()
	close(ch)

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a dump file.")
	}
	runtime.GOMAXPROCS(*cpus)

	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to mongodb: %v", err)
	}

	parser := wikidump.NewParser().UseConfig(wikitext.EnglishWikipedia())
	src, err := parser.StreamFile(*file)
	if err != nil {
		log.Fatalf("Error setting up dump stream:  %v", err)
	}

	err = session.DB(*dbname).C(*collection).EnsureIndex(titleIndex)
	if err != nil {
		log.Fatal("Error creating title index", err)
	}
	processDump(src, session.DB(*dbname))
}
