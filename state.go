package textile

import "context"

// noteInfo tracks one footnote/endnote definition as it's discovered by
// either its "note#label." definition or a "[#label]" reference, whichever is
// seen first; the other fills in whatever fields are still missing.
type noteInfo struct {
	id      string
	content string
	hasContent bool
	link    string
	hasLink bool
	attrs   string
	seq     string
	hasSeq  bool
	refids  []string
}

// parserState carries everything a single Parse call accumulates: the
// placeholder shelf, footnote/note bookkeeping, and list numbering. It is
// created fresh per call and discarded afterward, so a *Config can be
// shared across concurrent Parse calls.
type parserState struct {
	ctx   context.Context
	cfg   *Config
	shelf *shelf

	notes             map[string]*noteInfo
	unreferencedNotes map[string]*noteInfo
	noteOrder         []string // insertion order of notes, for stable iteration

	footnotes map[string]string

	urlrefs map[string]urlString

	noteIndex int
	linkIndex uint32

	olStarts      map[string]int
	notelistCache map[string]string
}

func newParserState(ctx context.Context, cfg *Config) *parserState {
	return &parserState{
		ctx:               ctx,
		cfg:               cfg,
		shelf:             newShelf(cfg.uid, cfg.linkPrefix),
		notes:             make(map[string]*noteInfo),
		unreferencedNotes: make(map[string]*noteInfo),
		footnotes:         make(map[string]string),
		urlrefs:           make(map[string]urlString),
		noteIndex:         1,
		olStarts:          make(map[string]int),
		notelistCache:     make(map[string]string),
	}
}

func (p *parserState) incrementLinkIndex() uint32 {
	p.linkIndex++
	return p.linkIndex
}

// retrieveURLs substitutes every :url placeholder, redirecting a shelved
// value through urlrefs first in case it's actually a "[flag]" reference
// rather than a literal URL.
func (p *parserState) retrieveURLs(text string) string {
	return p.shelf.retrieveURLs(text, func(url string) string {
		if url == "" {
			return url
		}
		if rurl, ok := p.urlrefs[url]; ok {
			return rurl.ToHTMLString()
		}
		return url
	})
}

func (p *parserState) noteOrGet(label string) *noteInfo {
	if n, ok := p.notes[label]; ok {
		return n
	}
	n := &noteInfo{}
	p.notes[label] = n
	p.noteOrder = append(p.noteOrder, label)
	return n
}
