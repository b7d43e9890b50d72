package textile

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// rx wraps *regexp2.Regexp with a stdlib-regexp-shaped convenience surface.
// regexp2 is used throughout this package instead of the standard library's
// regexp (RE2) because the Textile grammar depends on lookahead, lookbehind,
// and backreference constructs RE2 cannot express.
type rx struct {
	re *regexp2.Regexp
}

// mustRe compiles pattern, which may carry its own inline mode modifiers
// (e.g. "(?si)", "(?m)") in the same way the .NET-style regexp2 engine
// understands them.
func mustRe(pattern string) *rx {
	return &rx{re: regexp2.MustCompile(pattern, regexp2.None)}
}

// mustReOpt compiles pattern with explicit regexp2 options, for patterns
// that need backreferences or other constructs RE2-compat mode rejects.
func mustReOpt(pattern string, opts regexp2.RegexOptions) *rx {
	return &rx{re: regexp2.MustCompile(pattern, opts)}
}

func (r *rx) MatchString(s string) bool {
	ok, err := r.re.MatchString(s)
	return err == nil && ok
}

// rxMatch wraps a regexp2.Match with numbered- and named-group accessors
// that never panic on an absent group.
type rxMatch struct {
	m *regexp2.Match
}

func (m *rxMatch) String() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.String()
}

func (m *rxMatch) Group(name string) string {
	if m == nil || m.m == nil {
		return ""
	}
	g := m.m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

func (m *rxMatch) HasGroup(name string) bool {
	if m == nil || m.m == nil {
		return false
	}
	g := m.m.GroupByName(name)
	return g != nil && len(g.Captures) > 0
}

func (m *rxMatch) GroupN(i int) string {
	if m == nil || m.m == nil {
		return ""
	}
	g := m.m.GroupByNumber(i)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

func (m *rxMatch) Index() int {
	if m == nil || m.m == nil {
		return -1
	}
	return m.m.Index
}

func (m *rxMatch) Length() int {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Length
}

// FindMatch returns the first match, or nil if none / on internal error.
func (r *rx) FindMatch(s string) *rxMatch {
	m, err := r.re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	return &rxMatch{m: m}
}

// FindAllMatches returns every non-overlapping match in order.
func (r *rx) FindAllMatches(s string) []*rxMatch {
	var out []*rxMatch
	m, err := r.re.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, &rxMatch{m: m})
		m, err = r.re.FindNextMatch(m)
	}
	return out
}

func (r *rx) FindStringSubmatch(s string) []string {
	m := r.FindMatch(s)
	if m == nil {
		return nil
	}
	groups := m.m.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) > 0 {
			out[i] = g.String()
		}
	}
	return out
}

// ReplaceAllStringFunc replaces every match of r in s with repl(matchText).
func (r *rx) ReplaceAllStringFunc(s string, repl func(*rxMatch) string) string {
	var b strings.Builder
	last := 0
	m, err := r.re.FindStringMatch(s)
	for err == nil && m != nil {
		start := m.Index
		b.WriteString(s[last:start])
		b.WriteString(repl(&rxMatch{m: m}))
		last = start + m.Length
		m, err = r.re.FindNextMatch(m)
	}
	b.WriteString(s[last:])
	return b.String()
}

// ReplaceAll is the non-callback variant for a fixed replacement string
// (stdlib-regexp "$name"-less literal substitution is not needed anywhere
// in this package, so replacement is always literal text).
func (r *rx) ReplaceAll(s, replacement string) string {
	return r.ReplaceAllStringFunc(s, func(*rxMatch) string { return replacement })
}

// Split splits s on every match of r, like strings.Split but regex-driven.
func (r *rx) Split(s string) []string {
	matches := r.FindAllMatches(s)
	if len(matches) == 0 {
		return []string{s}
	}
	out := make([]string, 0, len(matches)+1)
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m.Index()])
		last = m.Index() + m.Length()
	}
	out = append(out, s[last:])
	return out
}

// SplitWithCapture splits on matches of r like Split, but interleaves the
// matched separator text itself into the result (mirroring Rust's
// split_with_capture helper used by the table builder).
func (r *rx) SplitWithCapture(s string) []string {
	matches := r.FindAllMatches(s)
	if len(matches) == 0 {
		return []string{s}
	}
	out := make([]string, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m.Index()])
		out = append(out, m.String())
		last = m.Index() + m.Length()
	}
	out = append(out, s[last:])
	return out
}
