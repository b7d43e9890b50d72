package textile

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

var reImage = mustRe(`(?:[\[{])?` +
	`\!` +
	`([<>=]|&lt;|&gt;)?` +
	`(` + clsRES + `)` +
	`(?:\.\s)?` +
	`([^\s(!]+)` +
	`\s?` +
	`(?:\(([^)]+)\))?` +
	`\!` +
	`(?::(\S+)(?<![\]).,]))?` +
	`(?:[\]}]|(?=[.,\s)|]|$))`)

// image converts "!src!" and "!src(title)!:href" image markup into an
// <img> tag (optionally wrapped in an <a>), shelving the rendered result.
// Invalid URL schemes are left untouched.
func (p *parserState) image(text string) string {
	return reImage.ReplaceAllStringFunc(text, func(m *rxMatch) string {
		url := m.GroupN(3)
		if !p.isValidURL(url) {
			return m.String()
		}

		atts := parseBlockAttrs(m.GroupN(2), "", true, p.cfg.restricted).htmlAttrs()

		if align := m.GroupN(1); align != "" {
			var alignment string
			switch align {
			case "<", "&lt;":
				alignment = "left"
			case "=":
				alignment = "center"
			case ">", "&gt;":
				alignment = "right"
			}
			useAlignClass := p.cfg.htmlKind == html5Kind
			if p.cfg.alignClassSet {
				useAlignClass = p.cfg.alignClass
			}
			if alignment != "" {
				if useAlignClass {
					atts.insertCSSClass("align-" + alignment)
				} else {
					atts.insert("align", alignment)
				}
			}
		}

		title := m.GroupN(4)
		atts.insert("alt", title)

		if !parseURL(url).IsRelative() && p.cfg.getSizes {
			if w, h, ok := p.cfg.imageSizeProbe(p.ctx, url); ok {
				atts.insert("height", itoa(h))
				atts.insert("width", itoa(w))
			}
		}

		urlID := p.shelf.shelveURL(rawURLString(p.unrestrictURL(url)).ToHTMLString())
		atts.insert("src", urlID)

		if title != "" {
			atts.insert("title", title)
		}

		img := generateTag("img", nil, atts)
		out := img
		if href := m.GroupN(5); href != "" {
			shelvedHref := p.shelf.shelveURL(rawURLString(p.unrestrictURL(href)).ToHTMLString())
			if shelvedHref != "" {
				out = generateTagStr("a", img, blockHTMLAttrs{{Name: "href", Value: shelvedHref}})
			}
		}
		return p.shelf.shelve(out)
	})
}

// probeImageSize performs a bounded GET against url and decodes just
// enough of the response to read its dimensions, swallowing every error
// (network failure, non-image content, timeout) as ok=false.
func probeImageSize(ctx context.Context, url string) (w, h int, ok bool) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return 0, 0, false
	}

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, false
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
