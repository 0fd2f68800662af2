package wikitext

// Dialect profiles for Wikimedia sites. The data here tracks the
// site configuration of the wikis themselves, not anything version
// specific in this package.

// EnglishWikipedia is the dialect of en.wikipedia.org.
func EnglishWikipedia() *ConfigurationSource {
	return &ConfigurationSource{
		CategoryNamespaces: []string{"category"},
		ExtensionTags: []string{
			"categorytree",
			"ce",
			"charinsert",
			"chem",
			"gallery",
			"graph",
			"hiero",
			"imagemap",
			"indicator",
			"inputbox",
			"mapframe",
			"maplink",
			"math",
			"nowiki",
			"poem",
			"pre",
			"ref",
			"references",
			"score",
			"section",
			"source",
			"syntaxhighlight",
			"templatedata",
			"templatestyles",
			"timeline",
		},
		FileNamespaces: []string{"file", "image"},
		LinkTrail:      "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz",
		MagicWords: []string{
			"DISAMBIG",
			"EXPECTUNUSEDCATEGORY",
			"FORCETOC",
			"HIDDENCAT",
			"INDEX",
			"NEWSECTIONLINK",
			"NOCC",
			"NOCOLLABORATIONHUBTOC",
			"NOCONTENTCONVERT",
			"NOEDITSECTION",
			"NOGALLERY",
			"NOGLOBAL",
			"NOINDEX",
			"NONEWSECTIONLINK",
			"NOTC",
			"NOTITLECONVERT",
			"NOTOC",
			"STATICREDIRECT",
			"TOC",
		},
		Protocols: []string{
			"//",
			"bitcoin:",
			"ftp://",
			"ftps://",
			"geo:",
			"git://",
			"gopher://",
			"http://",
			"https://",
			"irc://",
			"ircs://",
			"magnet:",
			"mailto:",
			"mms://",
			"news:",
			"nntp://",
			"redis://",
			"sftp://",
			"sip:",
			"sips:",
			"sms:",
			"ssh://",
			"svn://",
			"tel:",
			"telnet://",
			"urn:",
			"worldwind://",
			"xmpp:",
		},
		RedirectMagicWords: []string{"REDIRECT"},
	}
}

// SimpleEnglishWikipedia is the dialect of simple.wikipedia.org.
// Currently identical to the English Wikipedia configuration.
func SimpleEnglishWikipedia() *ConfigurationSource {
	return EnglishWikipedia()
}
