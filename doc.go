// Package wikidump reads MediaWiki XML export (dump) files into an
// in-memory Site of pages and revisions, optionally flattening the wiki
// markup of each revision into plain readable text.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// Both plain and bzip2-compressed dumps are accepted; compression is
// detected from the file itself. See the programs under tools/ for
// ways I've put this to use.
package wikidump
