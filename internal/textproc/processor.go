// Package textproc prepares text for speech synthesis: markup stripping,
// abbreviation expansion, symbol and URL verbalization, truncation.
package textproc

import (
	"html"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Options control the normalization steps applied before synthesis.
type Options struct {
	ExpandAbbreviations bool
	ProcessSpecialChars bool
	ProcessURLs         bool
	StripFormatting     bool
	MaxChars            int    // 0 = unlimited
	Language            string // substitution table selector; empty = system language
}

// DefaultOptions matches the defaults the settings layer ships with.
func DefaultOptions() Options {
	return Options{
		ExpandAbbreviations: true,
		ProcessSpecialChars: true,
		ProcessURLs:         false,
		StripFormatting:     true,
	}
}

var (
	reHTMLTag  = regexp.MustCompile(`<[^>]+>`)
	reMDLink   = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	reMDBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reMDItalic = regexp.MustCompile(`\*(.+?)\*`)
	reMDCode   = regexp.MustCompile("`(.+?)`")
	reMDHeader = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reMDList   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	reMDOrder  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	reURL      = regexp.MustCompile(`https?://\S+`)
	reSpaces   = regexp.MustCompile(`[ \t]{2,}`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// urlPlaceholder shields URLs from symbol substitution; the NUL byte cannot
// appear in any substitution table.
const urlPlaceholder = "\x00"

// SystemLanguage returns the two-letter code from $LANG, defaulting to "en".
func SystemLanguage() string {
	lang := os.Getenv("LANG")
	if len(lang) < 2 {
		return "en"
	}
	return strings.ToLower(lang[:2])
}

// Process normalizes text for speech. Deterministic and pure for a fixed
// environment; the steps run in a fixed order: markup stripping,
// abbreviation expansion, symbol substitution, URL handling, truncation.
// Text that reduces to nothing yields the empty string.
func Process(text string, opts Options) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang := opts.Language
	if lang == "" {
		lang = SystemLanguage()
	}
	table := ForLanguage(lang)

	if opts.StripFormatting {
		text = stripFormatting(text)
	}
	if opts.ExpandAbbreviations {
		text = expandAbbreviations(text, lang)
	}

	// Symbol substitution targets standalone characters; URLs are shielded
	// so their punctuation survives until the URL step.
	urls := reURL.FindAllString(text, -1)
	text = reURL.ReplaceAllString(text, urlPlaceholder)
	if opts.ProcessSpecialChars {
		text = replaceSymbols(text, table.Symbols)
	}
	for _, u := range urls {
		spoken := ""
		if opts.ProcessURLs {
			spoken = verbalizeURL(u, table)
		}
		text = strings.Replace(text, urlPlaceholder, spoken, 1)
	}

	text = reSpaces.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if opts.MaxChars > 0 {
		if runes := []rune(text); len(runes) > opts.MaxChars {
			text = strings.TrimSpace(string(runes[:opts.MaxChars]))
		}
	}
	return text
}

// stripFormatting removes HTML and Markdown syntax while keeping the
// readable content.
func stripFormatting(text string) string {
	text = html.UnescapeString(text)
	text = reHTMLTag.ReplaceAllString(text, "")
	text = reMDLink.ReplaceAllString(text, "$1")
	text = reMDBold.ReplaceAllString(text, "$1")
	text = reMDItalic.ReplaceAllString(text, "$1")
	text = reMDCode.ReplaceAllString(text, "$1")
	text = reMDHeader.ReplaceAllString(text, "")
	text = reMDList.ReplaceAllString(text, "")
	text = reMDOrder.ReplaceAllString(text, "")
	return text
}

type abbrevRule struct {
	re   *regexp.Regexp
	repl string
}

// abbrevRules holds the whole-word, case-insensitive expansion rules,
// compiled once per language in deterministic (sorted-key) order.
var abbrevRules = map[string][]abbrevRule{}

func init() {
	for lang, table := range tables {
		keys := make([]string, 0, len(table.Abbreviations))
		for k := range table.Abbreviations {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		rules := make([]abbrevRule, 0, len(keys))
		for _, k := range keys {
			rules = append(rules, abbrevRule{
				re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
				repl: table.Abbreviations[k],
			})
		}
		abbrevRules[lang] = rules
	}
}

func expandAbbreviations(text, lang string) string {
	rules, ok := abbrevRules[lang]
	if !ok {
		rules = abbrevRules["en"]
	}
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

func replaceSymbols(text string, symbols []Symbol) string {
	for _, s := range symbols {
		text = strings.ReplaceAll(text, s.Char, s.Spoken)
	}
	return text
}

// verbalizeURL rewrites a URL's punctuation into spoken words so engines
// read addresses naturally: "https://example.com/x" becomes
// "example dot com slash x" (per-language words).
func verbalizeURL(url string, table Table) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimSuffix(url, "/")
	url = strings.ReplaceAll(url, ".", " "+table.Dot+" ")
	url = strings.ReplaceAll(url, "/", " "+table.Slash+" ")
	return url
}
