package wikitext

import "strings"

// A ConfigurationSource is the data-only description of one wiki's
// markup dialect. Sources are interchangeable; see the Wikipedia
// profiles in this package for complete examples.
type ConfigurationSource struct {
	CategoryNamespaces []string
	ExtensionTags      []string
	FileNamespaces     []string
	LinkTrail          string
	MagicWords         []string
	Protocols          []string
	RedirectMagicWords []string
}

// A Configuration is a compiled dialect ready for parsing. It is
// immutable once built and safe for concurrent use.
type Configuration struct {
	categoryNamespaces map[string]bool
	extensionTags      map[string]bool
	fileNamespaces     map[string]bool
	linkTrail          map[rune]bool
	magicWords         map[string]bool
	protocols          []string
	redirectWords      map[string]bool
}

func stringSet(ss []string, lower bool) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		if lower {
			s = strings.ToLower(s)
		}
		m[s] = true
	}
	return m
}

// NewConfiguration compiles a dialect source.
func NewConfiguration(src *ConfigurationSource) *Configuration {
	c := &Configuration{
		categoryNamespaces: stringSet(src.CategoryNamespaces, true),
		extensionTags:      stringSet(src.ExtensionTags, true),
		fileNamespaces:     stringSet(src.FileNamespaces, true),
		linkTrail:          make(map[rune]bool, len(src.LinkTrail)),
		magicWords:         stringSet(src.MagicWords, false),
		protocols:          append([]string(nil), src.Protocols...),
		redirectWords:      stringSet(src.RedirectMagicWords, false),
	}
	for _, r := range src.LinkTrail {
		c.linkTrail[r] = true
	}
	return c
}

// DefaultConfiguration is a minimal dialect good enough for most
// MediaWiki content when no site profile is known.
func DefaultConfiguration() *Configuration {
	return NewConfiguration(&ConfigurationSource{
		CategoryNamespaces: []string{"category"},
		ExtensionTags:      []string{"gallery", "math", "nowiki", "pre", "ref", "references", "source", "syntaxhighlight"},
		FileNamespaces:     []string{"file", "image"},
		LinkTrail:          "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz",
		MagicWords:         []string{"FORCETOC", "NOEDITSECTION", "NOGALLERY", "NOTOC"},
		Protocols: []string{
			"//", "ftp://", "http://", "https://", "irc://", "mailto:", "news:",
		},
		RedirectMagicWords: []string{"REDIRECT"},
	})
}

func (c *Configuration) isCategoryNamespace(ns string) bool {
	return c.categoryNamespaces[strings.ToLower(strings.TrimSpace(ns))]
}

func (c *Configuration) isFileNamespace(ns string) bool {
	return c.fileNamespaces[strings.ToLower(strings.TrimSpace(ns))]
}

func (c *Configuration) isExtensionTag(name string) bool {
	return c.extensionTags[strings.ToLower(name)]
}

func (c *Configuration) isMagicWord(w string) bool {
	return c.magicWords[w]
}

func (c *Configuration) isRedirect(w string) bool {
	return c.redirectWords[strings.ToUpper(w)]
}

func (c *Configuration) hasProtocol(s string) bool {
	for _, p := range c.protocols {
		if strings.HasPrefix(strings.ToLower(s), p) {
			return true
		}
	}
	return false
}
