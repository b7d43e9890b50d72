package textile

import "strings"

// shelf is the placeholder store every transformation phase hides its
// literal fragments behind. Each entry is keyed by a monotonically
// increasing index, namespaced under the parse session's uid so that
// placeholders can never collide with ordinary document text.
//
// Invariant: once a phase shelves text T, no later phase may observe or
// modify T until retrieve() substitutes it back in, at the very end of
// the parse.
type shelf struct {
	uid        string
	linkPrefix string

	items    []string // index i holds the text for placeholder i
	refCache map[int]string

	spanDepth int
}

func newShelf(uid, linkPrefix string) *shelf {
	return &shelf{
		uid:        uid,
		linkPrefix: linkPrefix,
		refCache:   make(map[int]string),
	}
}

// shelvePlaceholder returns the opaque token for shelf index i.
func (s *shelf) shelvePlaceholder(i int) string {
	return s.uid + itoa(i) + ":shelve"
}

func (s *shelf) urlPlaceholder(i int) string {
	return s.uid + itoa(i) + ":url"
}

// shelve stores text under a freshly issued index and returns its
// placeholder.
func (s *shelf) shelve(text string) string {
	if text == "" {
		return ""
	}
	i := len(s.items)
	s.items = append(s.items, text)
	return s.shelvePlaceholder(i)
}

// shelveURL stores the HTML-escaped rendered form of a URL under the
// :url namespace, distinct from the general shelf namespace so the final
// retrieveURLs pass can run as a single dedicated substitution.
func (s *shelf) shelveURL(htmlEscaped string) string {
	i := len(s.items)
	s.items = append(s.items, htmlEscaped)
	return s.urlPlaceholder(i)
}

// retrieve substitutes every known :shelve placeholder back into text,
// repeating full passes until one makes no further change. Termination is
// guaranteed because a shelved value can only reference placeholders
// issued strictly before it (earlier indices), so each pass can only
// shrink the remaining placeholder count.
func (s *shelf) retrieve(text string) string {
	for {
		next := s.retrieveOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func (s *shelf) retrieveOnce(text string) string {
	if len(s.items) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], s.uid)
		if idx < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+idx])
		pos := i + idx
		if n, length, ok := s.matchPlaceholder(text[pos:], "shelve", len(s.items)); ok {
			b.WriteString(s.items[n])
			pos += length
		} else {
			b.WriteString(s.uid)
			pos += len(s.uid)
		}
		i = pos
	}
	return b.String()
}

// matchPlaceholder attempts to parse "{uid}{n}:{suffix}" at the start of
// text (text is known to start with s.uid). bound is the size of the
// namespace n indexes into (len(s.items) for :shelve/:url, len(s.refCache)
// for :ospan /:cspan) — callers must pass the namespace matching suffix, or
// a valid-looking index from the wrong namespace will be accepted and the
// wrong slot read back. Returns the parsed index, the total byte length
// consumed, and whether the match succeeded.
func (s *shelf) matchPlaceholder(text, suffix string, bound int) (int, int, bool) {
	rest := text[len(s.uid):]
	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == 0 {
		return 0, 0, false
	}
	tail := ":" + suffix
	if !strings.HasPrefix(rest[j:], tail) {
		return 0, 0, false
	}
	n := atoiFast(rest[:j])
	if n < 0 || n >= bound {
		return 0, 0, false
	}
	return n, len(s.uid) + j + len(tail), true
}

// retrieveURLs runs a single pass substituting :url placeholders; unlike
// retrieve, URLs never reference other placeholders so one pass suffices.
// resolve gets a chance to redirect each raw stored value (a "text":flag
// link's href is shelved as the literal flag text, to be swapped for the
// flag's registered URL here) before it's spliced back in.
func (s *shelf) retrieveURLs(text string, resolve func(string) string) string {
	if len(s.items) == 0 {
		return text
	}
	var b strings.Builder
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], s.uid)
		if idx < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+idx])
		pos := i + idx
		if n, length, ok := s.matchPlaceholder(text[pos:], "url", len(s.items)); ok {
			b.WriteString(resolve(s.items[n]))
			pos += length
		} else {
			b.WriteString(s.uid)
			pos += len(s.uid)
		}
		i = pos
	}
	return b.String()
}

// storeRef records text under the numeric ref-cache namespace (used by
// the span engine's ospan/cspan placeholders) and returns its index.
func (s *shelf) storeRef(text string) int {
	n := len(s.refCache)
	s.refCache[n] = text
	return n
}

func (s *shelf) ref(n int) string {
	return s.refCache[n]
}

// storeTags stashes a span's opening and closing tag text and returns the
// ":ospan "/" :cspan" placeholder pair the span engine splices around its
// (possibly still-shelved) content, so nested spans can be resolved without
// re-parsing already-built tags.
func (s *shelf) storeTags(openTag, closeTag string) (string, string) {
	i := s.storeRef(openTag)
	j := s.storeRef(closeTag)
	return s.uid + itoa(i) + ":ospan ", " " + s.uid + itoa(j) + ":cspan"
}

// retrieveTags substitutes every ":ospan "/" :cspan" placeholder pair back
// into text. Unlike the general shelve/retrieve namespace, the delimiters
// here carry a literal space on one side, so this is handled with a direct
// scan rather than the uid+digits+":suffix" helper used elsewhere.
func (s *shelf) retrieveTags(text string) string {
	if len(s.refCache) == 0 {
		return text
	}
	var b strings.Builder
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], s.uid)
		if idx < 0 {
			b.WriteString(text[i:])
			break
		}
		pos := i + idx
		if n, length, ok := s.matchPlaceholder(text[pos:], "ospan ", len(s.refCache)); ok {
			b.WriteString(text[i:pos])
			b.WriteString(s.refCache[n])
			i = pos + length
			continue
		}
		if pos > 0 && text[pos-1] == ' ' {
			if n, length, ok := s.matchPlaceholder(text[pos:], "cspan", len(s.refCache)); ok {
				b.WriteString(text[i : pos-1])
				b.WriteString(s.refCache[n])
				i = pos + length
				continue
			}
		}
		b.WriteString(text[i : pos+len(s.uid)])
		i = pos + len(s.uid)
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func atoiFast(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
