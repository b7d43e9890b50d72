package textile

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"
)

// htmlKindT selects which HTML flavor rendering targets: it affects the use
// of <abbr> vs <acronym>, <br> vs <br />, and how image alignment defaults
// are expressed.
type htmlKindT int

const (
	html5Kind htmlKindT = iota
	xhtmlKind
)

// Sanitizer is implemented by anything able to clean a finished HTML
// fragment. bluemondayPolicy (sanitize.go) is the built-in implementation;
// callers may substitute their own.
type Sanitizer interface {
	Sanitize(html string) string
}

// Config holds every tunable of the converter and builds a reusable,
// immutable-after-construction parser. A Config is safe to reuse for
// multiple Parse calls and across goroutines: no parse leaves state behind
// on the Config itself.
type Config struct {
	uid        string
	linkPrefix string

	restricted       bool
	rawBlockEnabled  bool
	alignClassSet    bool
	alignClass       bool
	blockTags        bool
	lite             bool
	noImage          bool
	getSizes         bool
	maxSpanDepth     int
	htmlKind         htmlKindT
	rel              string
	sanitizer        Sanitizer
	dynGlyphRules    []glyphRule
	imageSizeProbe   func(ctx context.Context, url string) (w, h int, ok bool)
}

// NewConfig returns a Config with the reference implementation's defaults:
// HTML5 output, block tags enabled, unrestricted, images enabled, a span
// nesting depth of 5, and no sanitizer.
func NewConfig() *Config {
	c := &Config{
		blockTags:      true,
		maxSpanDepth:   5,
		htmlKind:       html5Kind,
		imageSizeProbe: probeImageSize,
	}
	return c.WithUID(timeBasedUID())
}

func timeBasedUID() string {
	h := fnv.New64a()
	var buf [8]byte
	now := uint64(time.Now().UnixNano())
	for i := 0; i < 8; i++ {
		buf[i] = byte(now >> (8 * i))
	}
	h.Write(buf[:])
	return strconv.FormatUint(h.Sum64(), 16)
}

// WithUID overrides the random per-parse token used to build unique shelf
// placeholders and footnote/link ids. NewConfig already calls this once with
// a time-based value; tests wanting stable output can override it directly.
func (c *Config) WithUID(base string) *Config {
	c.uid = "textileRef:" + base + ":"
	c.linkPrefix = base + "-"
	glyphRepl := `$1<span class="caps">` + c.uid + `:glyph:$2</span>$3`
	c.dynGlyphRules = []glyphRule{{re: reDyn3Plus, repl: glyphRepl}}
	return c
}

// WithHTMLKind selects XHTML or HTML5 output.
func (c *Config) WithHTMLKind(xhtml bool) *Config {
	if xhtml {
		c.htmlKind = xhtmlKind
	} else {
		c.htmlKind = html5Kind
	}
	return c
}

// WithRestricted enables restricted mode: raw HTML is escaped, class/id/
// style attributes are ignored (lang is kept), and only http/https/ftp/mailto
// URL schemes are honored.
func (c *Config) WithRestricted(v bool) *Config { c.restricted = v; return c }

// WithLite limits recognized block types to paragraphs, blockquotes and
// block code (p., bq., bc.).
func (c *Config) WithLite(v bool) *Config { c.lite = v; return c }

// WithImages controls whether image markup is rendered at all.
func (c *Config) WithImages(v bool) *Config { c.noImage = !v; return c }

// WithBlockTags controls whether Textile block tags (h1., bq., etc.) are
// recognized. Disabling it treats the whole input as one run of text that
// only gets inline span and glyph processing, with no <p> wrapper.
func (c *Config) WithBlockTags(v bool) *Config { c.blockTags = v; return c }

// WithRel forces the given rel="" attribute onto every generated link.
func (c *Config) WithRel(rel string) *Config { c.rel = rel; return c }

// WithAlignClass controls whether image alignment is expressed with
// an "align-{left|right|center}" CSS class (true) or an align="" attribute
// (false). Unset, XHTML output uses the attribute and HTML5 uses the class.
func (c *Config) WithAlignClass(v bool) *Config {
	c.alignClassSet = true
	c.alignClass = v
	return c
}

// WithRawBlocks records the raw-blocks setting on the Config. The parser
// does not read it: a paragraph wrapped in a tag that is neither a
// recognized HTML block nor phrasing tag is processed the same way whether
// it is on or off.
func (c *Config) WithRawBlocks(v bool) *Config { c.rawBlockEnabled = v; return c }

// WithImageSizeProbe overrides how <img> width/height are discovered when
// WithImageSizing is enabled. The default performs a bounded HTTP GET.
func (c *Config) WithImageSizeProbe(probe func(ctx context.Context, url string) (w, h int, ok bool)) *Config {
	c.imageSizeProbe = probe
	return c
}

// WithImageSizing enables automatic width/height attributes on <img> tags,
// determined by fetching a small leading chunk of each remote image.
func (c *Config) WithImageSizing(v bool) *Config { c.getSizes = v; return c }

// WithSanitizer enables a final HTML-sanitization pass. Passing nil
// disables it.
func (c *Config) WithSanitizer(s Sanitizer) *Config { c.sanitizer = s; return c }

// WithMaxSpanDepth overrides the recursion limit on nested inline spans
// (*strong*, _em_, and so on). The default is 5.
func (c *Config) WithMaxSpanDepth(n int) *Config { c.maxSpanDepth = n; return c }

func (c *Config) properBrTag() string {
	if c.htmlKind == xhtmlKind {
		return "<br />\n"
	}
	return "<br>\n"
}

func (c *Config) imagesEnabled() bool { return !c.noImage }
