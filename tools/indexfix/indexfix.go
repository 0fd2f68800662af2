// Print a multistream index with offsets normalized to 64 bits.
package main

import (
	"compress/bzip2"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-wikidump"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s wikipedia.index.bz2", os.Args[0])
	}
	r, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Error opening %v: %v", os.Args[1], err)
	}
	defer r.Close()

	ir := wikidump.NewIndexReader(bzip2.NewReader(r))
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading stream:  %v", err)
		}

		fmt.Println(e.String())
	}
}
