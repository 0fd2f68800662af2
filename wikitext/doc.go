// Package wikitext parses MediaWiki wiki text into a tree of typed nodes.
//
// The parser is deliberately forgiving: anything it can't make sense of
// comes back as plain text rather than an error, since dump content is
// full of half-broken markup.
package wikitext
