package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessEmptyInput(t *testing.T) {
	assert.Equal(t, "", Process("", DefaultOptions()))
	assert.Equal(t, "", Process("   \n\t  ", DefaultOptions()))
}

func TestProcessMaxChars(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		expected string
	}{
		{
			name:     "plain suffix drop",
			text:     "Hello, world!",
			maxChars: 5,
			expected: "Hello",
		},
		{
			name:     "zero means unlimited",
			text:     "Hello, world!",
			maxChars: 0,
			expected: "Hello, world!",
		},
		{
			name:     "limit longer than text",
			text:     "Hi",
			maxChars: 100,
			expected: "Hi",
		},
		{
			name:     "multibyte runes counted as characters",
			text:     "coração partido",
			maxChars: 7,
			expected: "coração",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.text, Options{MaxChars: tt.maxChars, Language: "en"})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestProcessIdempotentOnCleanText(t *testing.T) {
	opts := DefaultOptions()
	opts.Language = "en"

	texts := []string{
		"The quick brown fox jumps over the lazy dog.",
		"Uma frase simples sem marcação.",
		"Line one.\nLine two.",
	}
	for _, text := range texts {
		once := Process(text, opts)
		twice := Process(once, opts)
		assert.Equal(t, once, twice, "input %q", text)
	}
}

func TestStripFormatting(t *testing.T) {
	opts := Options{StripFormatting: true, Language: "en"}

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "markdown emphasis and code",
			text:     "**bold** and *italic* and `code`",
			expected: "bold and italic and code",
		},
		{
			name:     "headers and lists",
			text:     "# Title\n- item one\n- item two\n1. ordered",
			expected: "Title\nitem one\nitem two\nordered",
		},
		{
			name:     "html tags and entities",
			text:     "<p>caf&eacute; <b>forte</b></p>",
			expected: "café forte",
		},
		{
			name:     "markdown link keeps label",
			text:     "see [the docs](https://example.com) here",
			expected: "see the docs here",
		},
		{
			name:     "markup only reduces to empty",
			text:     "<div><span></span></div>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Process(tt.text, opts))
		})
	}
}

func TestExpandAbbreviations(t *testing.T) {
	opts := Options{ExpandAbbreviations: true, Language: "en"}

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "whole words expand",
			text:     "btw pls call me",
			expected: "by the way please call me",
		},
		{
			name:     "match is case-insensitive",
			text:     "BTW it works",
			expected: "by the way it works",
		},
		{
			name:     "substrings are left alone",
			text:     "the rhythm is fine",
			expected: "the rhythm is fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Process(tt.text, opts))
		})
	}
}

func TestExpandAbbreviationsPortuguese(t *testing.T) {
	opts := Options{ExpandAbbreviations: true, Language: "pt"}
	assert.Equal(t, "você é demais", Process("vc eh demais", opts))
}

func TestReplaceSymbols(t *testing.T) {
	opts := Options{ProcessSpecialChars: true, Language: "en"}
	assert.Equal(t, "100 percent done", Process("100% done", opts))
	assert.Equal(t, "user at host", Process("user@host", opts))

	opts.Language = "pt"
	assert.Equal(t, "100 por cento", Process("100%", opts))
}

func TestURLHandling(t *testing.T) {
	t.Run("verbalized when enabled", func(t *testing.T) {
		opts := Options{ProcessURLs: true, Language: "en"}
		got := Process("see https://example.com/docs now", opts)
		assert.Equal(t, "see example dot com slash docs now", got)
	})

	t.Run("dropped when disabled", func(t *testing.T) {
		opts := Options{Language: "en"}
		got := Process("see https://example.com/docs now", opts)
		assert.Equal(t, "see now", got)
	})

	t.Run("shielded from symbol substitution", func(t *testing.T) {
		opts := Options{ProcessSpecialChars: true, ProcessURLs: true, Language: "en"}
		got := Process("https://a.b/c", opts)
		assert.Equal(t, "a dot b slash c", got)
	})

	t.Run("portuguese spoken forms", func(t *testing.T) {
		opts := Options{ProcessURLs: true, Language: "pt"}
		got := Process("https://example.com", opts)
		assert.Equal(t, "example ponto com", got)
	})
}

func TestFixedOrderStripThenExpandThenTruncate(t *testing.T) {
	opts := Options{
		StripFormatting:     true,
		ExpandAbbreviations: true,
		MaxChars:            10,
		Language:            "en",
	}
	// "**btw** hello" → strip → "btw hello" → expand → "by the way hello"
	// → truncate(10) → "by the way"
	assert.Equal(t, "by the way", Process("**btw** hello", opts))
}

func TestForLanguage(t *testing.T) {
	assert.Equal(t, "ponto", ForLanguage("pt").Dot)
	assert.Equal(t, "punto", ForLanguage("es").Dot)
	assert.Equal(t, "dot", ForLanguage("en").Dot)
	assert.Equal(t, "dot", ForLanguage("de").Dot, "unknown languages fall back to English")
}

func TestSystemLanguage(t *testing.T) {
	t.Setenv("LANG", "pt_BR.UTF-8")
	assert.Equal(t, "pt", SystemLanguage())

	t.Setenv("LANG", "")
	assert.Equal(t, "en", SystemLanguage())
}
