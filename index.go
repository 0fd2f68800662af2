package wikidump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An IndexEntry is one line of a multistream dump index: the byte
// offset of the bzip2 stream holding a page, the page id, and its
// title.
type IndexEntry struct {
	Offset int64
	PageID int64
	Title  string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%d:%d:%s", e.Offset, e.PageID, e.Title)
}

// An IndexReader parses a multistream index line by line. Offsets in
// older indexes were written as 32-bit values and wrap; the reader
// normalizes them back to absolute positions.
type IndexReader struct {
	s    *bufio.Scanner
	base int64
	prev int64
}

// NewIndexReader reads index entries from r (already decompressed).
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{s: bufio.NewScanner(r)}
}

// Next returns the next index entry, or io.EOF.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.s.Scan() {
		if err := ir.s.Err(); err != nil {
			return IndexEntry{}, err
		}
		return IndexEntry{}, io.EOF
	}

	parts := strings.SplitN(ir.s.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("malformed index line %q", ir.s.Text())
	}

	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}

	if offset < ir.prev {
		ir.base += 1 << 32
	}
	ir.prev = offset

	return IndexEntry{
		Offset: offset + ir.base,
		PageID: id,
		Title:  parts[2],
	}, nil
}

// An IndexSummaryReader reduces an index to (stream offset, page
// count) pairs, one per bzip2 stream. Useful when the individual
// titles don't matter, only where to seek and how much to read.
type IndexSummaryReader struct {
	index *IndexReader
	prev  int64
	count int
}

// NewIndexSummaryReader wraps an index stream. It consumes the first
// entry up front to seed the first group.
func NewIndexSummaryReader(r io.Reader) (*IndexSummaryReader, error) {
	isr := &IndexSummaryReader{index: NewIndexReader(r)}
	first, err := isr.index.Next()
	if err != nil {
		return nil, err
	}
	isr.prev = first.Offset
	isr.count = 1
	return isr, nil
}

// Next returns the next stream offset and how many pages it holds.
// The final group comes back together with io.EOF.
func (isr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := isr.index.Next()
		if err != nil {
			offset, count = isr.prev, isr.count
			isr.prev, isr.count = 0, 0
			return offset, count, err
		}
		if e.Offset != isr.prev {
			offset, count = isr.prev, isr.count
			isr.prev, isr.count = e.Offset, 1
			return offset, count, nil
		}
		isr.count++
	}
}
