package wikidump

import (
	"io"
	"strings"
	"testing"
)

const testIndexData = `499:10:AccessibleComputing
499:12:Anarchism
499:13:AfghanistanHistory
499:14:AfghanistanGeography
499:15:AfghanistanPeople
499:18:AfghanistanCommunications
499:19:AfghanistanTransportations
499:20:AfghanistanMilitary
499:21:AfghanistanTransnationalIssues
499:23:AssistiveTechnology
2147418907:2638569:William Earl Brown
2147418907:2638570:Lebuhraya Persekutuan
2147418907:2638571:St Francis of Paola
2147418907:2638573:Francesco di Paula
2147418907:2638575:Arapahoe Community College
2147418907:2638583:Francesco Borgia
-2147469295:2638585:Philadelphia Bulletin
-2147469295:2638588:Zrinyi Miklos
-2147469295:2638602:Privatize
-2147469295:2638604:Island of Montreal
`

// The wrapped offset -2147469295 normalizes past 2^32.
const lastOffset = 2147498001

func TestIndexReader(t *testing.T) {
	ir := NewIndexReader(strings.NewReader(testIndexData))

	e, err := ir.Next()
	if err != nil {
		t.Fatalf("Error parsing first entry: %v", err)
	}
	if e.String() != "499:10:AccessibleComputing" {
		t.Errorf("First entry = %v", e)
	}
	if e.Offset != 499 || e.PageID != 10 {
		t.Errorf("First entry fields = %+v", e)
	}

	var last IndexEntry
	n := 1
	for {
		e, err = ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error on entry %v: %v", n, err)
		}
		last = e
		n++
	}

	if n != 20 {
		t.Errorf("Read %v entries, want 20", n)
	}
	if last.Offset != lastOffset {
		t.Errorf("Last offset = %v, want %v (wraparound)", last.Offset, lastOffset)
	}
	if last.Title != "Island of Montreal" {
		t.Errorf("Last title = %q", last.Title)
	}
}

func TestIndexReaderMalformed(t *testing.T) {
	ir := NewIndexReader(strings.NewReader("nocolons\n"))
	if _, err := ir.Next(); err == nil {
		t.Errorf("Expected an error for a malformed index line")
	}

	ir = NewIndexReader(strings.NewReader("x:10:y\n"))
	if _, err := ir.Next(); err == nil {
		t.Errorf("Expected an error for a non-numeric offset")
	}
}

func TestIndexTitleWithColons(t *testing.T) {
	ir := NewIndexReader(strings.NewReader("499:77:Wikipedia:Sandbox: the movie\n"))
	e, err := ir.Next()
	if err != nil {
		t.Fatalf("Error parsing entry: %v", err)
	}
	if e.Title != "Wikipedia:Sandbox: the movie" {
		t.Errorf("Title = %q", e.Title)
	}
}

func TestIndexSummaryReader(t *testing.T) {
	isr, err := NewIndexSummaryReader(strings.NewReader(testIndexData))
	if err != nil {
		t.Fatalf("Error creating summary reader: %v", err)
	}

	offset, count, err := isr.Next()
	if err != nil {
		t.Fatalf("Error on first group: %v", err)
	}
	if offset != 499 || count != 10 {
		t.Errorf("First group = %v/%v, want 499/10", offset, count)
	}

	offset, count, err = isr.Next()
	if err != nil {
		t.Fatalf("Error on second group: %v", err)
	}
	if offset != 2147418907 || count != 6 {
		t.Errorf("Second group = %v/%v, want 2147418907/6", offset, count)
	}

	offset, count, err = isr.Next()
	if err != io.EOF {
		t.Fatalf("Want io.EOF with the final group, got %v", err)
	}
	if offset != lastOffset || count != 4 {
		t.Errorf("Final group = %v/%v, want %v/4", offset, count, lastOffset)
	}
}
